// Package export writes decoded blackbox records as a CSV table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/fsutil"
)

// CSVWriter wraps csv.Writer with the fixed blackbox column layout.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter emitting \n line endings.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false
	return &CSVWriter{w: cw}
}

// WriteHeader writes the column names line.
func (c *CSVWriter) WriteHeader() error {
	if err := c.w.Write(blackbox.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteRecord derives and writes the row for one record.
func (c *CSVWriter) WriteRecord(r blackbox.Record) error {
	if err := c.w.Write(blackbox.Derive(r).Fields()); err != nil {
		return fmt.Errorf("write row for loop %d: %w", r.LoopIteration, err)
	}
	return nil
}

// Flush writes any buffered rows and reports the first write error seen.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSV writes the header and one row per record to w.
func WriteCSV(w io.Writer, records []blackbox.Record) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.WriteRecord(r); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// WriteFile creates or truncates path and writes the table to it. On failure
// the file may be left partially written.
func WriteFile(fsys fsutil.FileSystem, path string, records []blackbox.Record) (err error) {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
