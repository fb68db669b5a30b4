package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mmm-datagen/models"
)

// ReadCSV loads a file written by CSVWriter back into a Dataset. The seed is
// not part of the file and is left at zero.
func ReadCSV(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %q is empty", path)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "week" || header[len(header)-1] != "sales" {
		return nil, fmt.Errorf("csv: unexpected header %v", header)
	}

	body := records[1:]
	ds := &models.Dataset{
		Weeks: make([]time.Time, len(body)),
		Sales: make([]float64, len(body)),
	}
	for _, col := range header[1 : len(header)-1] {
		name, ok := strings.CutSuffix(col, "_spend")
		if !ok {
			return nil, fmt.Errorf("csv: unexpected column %q", col)
		}
		ds.Channels = append(ds.Channels, models.ChannelSpend{Name: name, Spend: make([]float64, len(body))})
	}

	for i, rec := range body {
		line := i + 2
		if len(rec) != len(header) {
			return nil, fmt.Errorf("csv: line %d: got %d fields, want %d", line, len(rec), len(header))
		}
		week, err := time.Parse(models.WeekLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: week: %w", line, err)
		}
		ds.Weeks[i] = week
		for j := range ds.Channels {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("csv: line %d: %s: %w", line, header[j+1], err)
			}
			ds.Channels[j].Spend[i] = v
		}
		sales, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: sales: %w", line, err)
		}
		ds.Sales[i] = sales
	}
	return ds, nil
}
