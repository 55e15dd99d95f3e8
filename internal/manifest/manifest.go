// Package manifest records what a report run read and wrote.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
	"github.com/KaramelBytes/salesreport-cli/internal/utils"
)

// FileName is the manifest's name inside an output directory.
const FileName = "manifest.json"

// Manifest describes one pipeline run.
type Manifest struct {
	ID          string           `json:"id"`
	Input       string           `json:"input"`
	InputRows   int              `json:"input_rows"`
	SourceFound bool             `json:"source_found"`
	Missing     []string         `json:"missing_columns,omitempty"`
	CleanStats  sales.CleanStats `json:"clean_stats"`
	TopK        int              `json:"top_k"`
	Outputs     []Output         `json:"outputs"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
}

// Output is one report produced, or skipped, by a run.
type Output struct {
	Report  string `json:"report"`
	Path    string `json:"path,omitempty"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped,omitempty"`
	Table   string `json:"table,omitempty"`
}

// New starts a manifest with a fresh run ID.
func New(input string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		Outputs:   []Output{},
		StartedAt: time.Now().UTC(),
	}
}

// Add records an output.
func (m *Manifest) Add(o Output) {
	m.Outputs = append(m.Outputs, o)
}

// Finish stamps the end time.
func (m *Manifest) Finish() {
	m.FinishedAt = time.Now().UTC()
}

// Save writes the manifest as indented JSON using atomic write.
func (m *Manifest) Save(path string) error {
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Outputs == nil {
		m.Outputs = []Output{}
	}
	return &m, nil
}
