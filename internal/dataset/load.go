package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat marks inputs whose extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Format identifies a tabular file encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Options tunes how a dataset is read.
type Options struct {
	// Name labels the table in errors and logs. Defaults to the file name.
	Name string
	// Sheet selects a worksheet in xlsx inputs. Empty means the first sheet.
	Sheet string
}

// FormatFromPath maps a file extension to its Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load opens path and reads it according to its extension.
func Load(path string, opts Options) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = filepath.Base(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", opts.Name, err)
	}
	defer file.Close()

	table, err := Read(file, format, opts)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// Read decodes a dataset from r.
func Read(r io.Reader, format Format, opts Options) (*Table, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r, opts)
	case FormatCSV:
		return readCSV(r, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}
