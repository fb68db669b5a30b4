package services

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"mmm-datagen/models"
	"mmm-datagen/utils"
)

func sampleDataset() *models.Dataset {
	anchor := time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)
	weeks := make([]time.Time, 4)
	for i := range weeks {
		weeks[i] = anchor.AddDate(0, 0, 7*i)
	}
	return &models.Dataset{
		Seed:  42,
		Weeks: weeks,
		Channels: []models.ChannelSpend{
			{Name: "tv", Spend: []float64{1000, 7000, 1000, 1000}},
			{Name: "search", Spend: []float64{500, 1500, 2000, 1000}},
		},
		Sales: []float64{10000, 14000, 12500, -200},
	}
}

func TestInsightColumnStats(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleDataset())

	if r.Weeks != 4 {
		t.Fatalf("Weeks: got %d, want 4", r.Weeks)
	}
	if len(r.Columns) != 3 {
		t.Fatalf("Columns: got %d, want 3", len(r.Columns))
	}

	tv := r.Columns[0]
	if tv.Name != "tv_spend" || tv.Min != 1000 || tv.Max != 7000 || tv.Mean != 2500 || tv.Total != 10000 {
		t.Errorf("tv stats: got %+v", tv)
	}
	sales := r.Columns[2]
	if sales.Name != "sales" || sales.Min != -200 || sales.Max != 14000 {
		t.Errorf("sales stats: got %+v", sales)
	}
}

func TestInsightPeaksAndShare(t *testing.T) {
	ds := sampleDataset()
	r := NewInsightService(utils.NewNopLogger()).Generate(ds)

	if !r.PeakSalesWeek.Equal(ds.Weeks[1]) || r.PeakSales != 14000 {
		t.Errorf("peak sales: got %v / %.2f", r.PeakSalesWeek, r.PeakSales)
	}
	if !r.PeakSpend["search"].Equal(ds.Weeks[2]) {
		t.Errorf("peak search spend: got %v", r.PeakSpend["search"])
	}
	if r.SpendShare["tv"] != 0.67 || r.SpendShare["search"] != 0.33 {
		t.Errorf("spend share: got %v", r.SpendShare)
	}
	if !r.FirstWeek.Equal(ds.Weeks[0]) || !r.LastWeek.Equal(ds.Weeks[3]) {
		t.Errorf("range: got %v → %v", r.FirstWeek, r.LastWeek)
	}
}

func TestInsightDoesNotMutate(t *testing.T) {
	ds := sampleDataset()
	before := sampleDataset()
	NewInsightService(utils.NewNopLogger()).Generate(ds)

	for i := range ds.Sales {
		if ds.Sales[i] != before.Sales[i] {
			t.Fatalf("sales[%d] changed", i)
		}
	}
	for c := range ds.Channels {
		for i := range ds.Channels[c].Spend {
			if ds.Channels[c].Spend[i] != before.Channels[c].Spend[i] {
				t.Fatalf("%s[%d] changed", ds.Channels[c].Name, i)
			}
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil)
	if r.Weeks != 0 {
		t.Errorf("expected 0 weeks for nil input")
	}

	var buf bytes.Buffer
	svc.WithOutput(&buf).Print(r)
	if !strings.Contains(buf.String(), "No data") {
		t.Errorf("expected empty-report notice, got %q", buf.String())
	}
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(utils.NewNopLogger()).WithOutput(&buf)
	svc.Print(svc.Generate(sampleDataset()))

	out := buf.String()
	for _, want := range []string{"tv_spend", "search_spend", "sales", "2021-01-03", "2021-01-24", "14000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		width  int
		want   string
	}{
		{nil, 10, ""},
		{[]float64{5, 5, 5}, 10, "▁▁▁"},
		{[]float64{0, 7}, 10, "▁█"},
		{[]float64{0, 0, 7, 7}, 2, "▁█"},
	}
	for _, tt := range tests {
		if got := sparkline(tt.values, tt.width); got != tt.want {
			t.Errorf("sparkline(%v, %d) = %q; want %q", tt.values, tt.width, got, tt.want)
		}
	}

	long := make([]float64, 156)
	for i := range long {
		long[i] = float64(i)
	}
	if n := utf8.RuneCountInString(sparkline(long, 52)); n != 52 {
		t.Errorf("sparkline width: got %d, want 52", n)
	}
}
