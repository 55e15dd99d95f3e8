package tabular

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
)

var (
	// ErrSourceNotFound indicates the input file does not exist. Read still
	// returns an empty Dataset alongside it so callers can carry on.
	ErrSourceNotFound = errors.New("source not found")
	// ErrUnsupported indicates a file extension no reader or writer handles.
	ErrUnsupported = errors.New("unsupported tabular format")
)

// ReadOptions controls how tabular input is decoded.
type ReadOptions struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based XLSX sheet position used when SheetName is empty.
	SheetIndex int
}

// Dataset is the decoded content of one tabular source.
type Dataset struct {
	Name           string
	Header         []string
	Records        []sales.RawRecord
	Rows           int
	MissingColumns []string
}

// Reader decodes one family of tabular files.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt ReadOptions) (*Dataset, error)
}

var readers []Reader

// RegisterReader adds a reader implementation to the registry.
func RegisterReader(r Reader) {
	readers = append(readers, r)
}

// Read selects a reader by file extension and decodes path.
func Read(path string, opt ReadOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyDataset(path), fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	for _, r := range readers {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
}

func emptyDataset(path string) *Dataset {
	return &Dataset{Name: filepath.Base(path), Records: []sales.RawRecord{}}
}

// setHeader trims column names and records which required columns are absent.
func (d *Dataset) setHeader(header []string) {
	d.Header = make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		d.Header[i] = strings.TrimSpace(h)
	}
	d.MissingColumns = sales.MissingColumns(d.Header)
}

// addRow maps a data row onto the header; short rows are padded with "".
func (d *Dataset) addRow(row []string) {
	d.Rows++
	fields := make(map[string]string, len(d.Header))
	for i, name := range d.Header {
		if name == "" {
			continue
		}
		if _, dup := fields[name]; dup {
			continue
		}
		if i < len(row) {
			fields[name] = row[i]
		} else {
			fields[name] = ""
		}
	}
	d.Records = append(d.Records, sales.RawRecordFromFields(fields))
}

func init() {
	RegisterReader(csvReader{})
	RegisterReader(xlsxReader{})
}
