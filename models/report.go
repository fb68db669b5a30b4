package models

import "time"

// ColumnStats summarises one numeric column of a Dataset.
type ColumnStats struct {
	Name  string
	Min   float64
	Max   float64
	Mean  float64
	Total float64
}

// DatasetReport holds the observational summary printed after generation.
type DatasetReport struct {
	Weeks      int
	FirstWeek  time.Time
	LastWeek   time.Time
	Columns    []ColumnStats
	SpendShare map[string]float64 // channel -> fraction of total spend

	PeakSalesWeek time.Time
	PeakSales     float64
	PeakSpend     map[string]time.Time // channel -> week of highest spend

	Sparklines map[string]string // column -> text chart
}
