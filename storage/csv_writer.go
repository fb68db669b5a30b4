package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mmm-datagen/models"
)

// CSVWriter writes a generated dataset to a delimited file, one row per week.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{path: path, file: f, writer: csv.NewWriter(f)}, nil
}

// Path returns the destination file.
func (c *CSVWriter) Path() string {
	return c.path
}

// Write emits the header and every week of ds in ascending order.
func (c *CSVWriter) Write(ctx context.Context, ds *models.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.writer.Write(ds.Columns()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, 0, len(ds.Channels)+2)
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		record = record[:0]
		record = append(record, row.Week.Format(models.WeekLayout))
		for _, v := range row.Spend {
			record = append(record, formatFloat(v))
		}
		record = append(record, formatFloat(row.Sales))
		if err := c.writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// formatFloat uses the shortest representation that parses back exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
