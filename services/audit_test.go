package services

import (
	"errors"
	"math"
	"strings"
	"testing"

	"mmm-datagen/generator"
	"mmm-datagen/models"
	"mmm-datagen/utils"
)

func TestAuditAcceptsGeneratedData(t *testing.T) {
	cfg := generator.DefaultConfig()
	a := NewAuditor(utils.NewNopLogger(), cfg.SpendFloors())

	for _, weeks := range []int{1, 10, 156} {
		ds, err := generator.Generate(42, weeks)
		if err != nil {
			t.Fatalf("generate %d: %v", weeks, err)
		}
		if err := a.Audit(ds); err != nil {
			t.Errorf("audit %d weeks: %v", weeks, err)
		}
	}
}

func TestAuditAllowsNegativeSales(t *testing.T) {
	ds := sampleDataset()
	if ds.Sales[3] >= 0 {
		t.Fatal("fixture should contain negative sales")
	}
	if err := NewAuditor(utils.NewNopLogger(), nil).Audit(ds); err != nil {
		t.Errorf("negative sales must pass: %v", err)
	}
}

func TestAuditFindings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ds *models.Dataset)
		want   string
	}{
		{"short sales", func(ds *models.Dataset) { ds.Sales = ds.Sales[:2] }, "sales has 2 values"},
		{"short spend", func(ds *models.Dataset) { ds.Channels[0].Spend = ds.Channels[0].Spend[:1] }, "tv_spend has 1 values"},
		{"gap", func(ds *models.Dataset) { ds.Weeks[2] = ds.Weeks[2].AddDate(0, 0, 1) }, "week 2"},
		{"below floor", func(ds *models.Dataset) { ds.Channels[1].Spend[0] = 499.99 }, "search_spend[0]"},
		{"nan", func(ds *models.Dataset) { ds.Sales[1] = math.NaN() }, "sales[1] is not finite"},
		{"inf spend", func(ds *models.Dataset) { ds.Channels[0].Spend[2] = math.Inf(1) }, "tv_spend[2] is not finite"},
	}

	a := NewAuditor(utils.NewNopLogger(), map[string]float64{"search": 500})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset()
			tt.mutate(ds)
			err := a.Audit(ds)
			if !errors.Is(err, ErrDatasetInvalid) {
				t.Fatalf("expected ErrDatasetInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if err := a.Audit(nil); !errors.Is(err, ErrDatasetInvalid) {
		t.Errorf("nil dataset: got %v", err)
	}
}
