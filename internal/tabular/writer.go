package tabular

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/salesreport-cli/internal/report"
)

// ErrNoData is returned when asked to write a table without rows. No file is
// created in that case.
var ErrNoData = errors.New("no data")

// WriteOptions controls output encoding.
type WriteOptions struct {
	// Precision is the number of decimals for floats; negative keeps full precision.
	Precision int
	// BOM prefixes CSV output with a UTF-8 byte order mark.
	BOM bool
}

// DefaultWriteOptions keeps full float precision and no BOM.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Precision: -1}
}

// Writer encodes a report table to one family of files.
type Writer interface {
	CanWrite(path string) bool
	Write(path string, t report.Table, opt WriteOptions) error
}

var writers = []Writer{csvWriter{}, xlsxWriter{}}

// Write encodes t to path, choosing the format by extension. Parent
// directories are created and the file is replaced atomically.
func Write(path string, t report.Table, opt WriteOptions) error {
	if t.Empty() {
		return fmt.Errorf("%w: %s", ErrNoData, t.Name)
	}
	for _, w := range writers {
		if w.CanWrite(path) {
			return w.Write(path, t, opt)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
}

// Ext returns the file extension used for an output format name.
func Ext(format string) (string, error) {
	switch format {
	case "", "csv":
		return ".csv", nil
	case "xlsx":
		return ".xlsx", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, format)
	}
}
