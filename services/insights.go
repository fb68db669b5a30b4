package services

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"mmm-datagen/models"
	"mmm-datagen/utils"
)

const sparkWidth = 52

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// InsightService summarises a dataset for the terminal. It only reads the
// dataset.
type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

// WithOutput redirects Print.
func (s *InsightService) WithOutput(w io.Writer) *InsightService {
	s.out = w
	return s
}

func (s *InsightService) Generate(ds *models.Dataset) *models.DatasetReport {
	report := &models.DatasetReport{
		SpendShare: make(map[string]float64),
		PeakSpend:  make(map[string]time.Time),
		Sparklines: make(map[string]string),
	}
	if ds == nil || ds.Len() == 0 {
		return report
	}

	report.Weeks = ds.Len()
	report.FirstWeek = ds.Weeks[0]
	report.LastWeek = ds.Weeks[ds.Len()-1]

	var totalSpend float64
	for _, c := range ds.Channels {
		col := models.SpendColumn(c.Name)
		st := columnStats(col, c.Spend)
		report.Columns = append(report.Columns, st)
		report.PeakSpend[c.Name] = ds.Weeks[argmax(c.Spend)]
		report.Sparklines[col] = sparkline(c.Spend, sparkWidth)
		totalSpend += st.Total
	}
	if totalSpend > 0 {
		for i, c := range ds.Channels {
			report.SpendShare[c.Name] = round2(report.Columns[i].Total / totalSpend)
		}
	}

	report.Columns = append(report.Columns, columnStats("sales", ds.Sales))
	peak := argmax(ds.Sales)
	report.PeakSalesWeek = ds.Weeks[peak]
	report.PeakSales = ds.Sales[peak]
	report.Sparklines["sales"] = sparkline(ds.Sales, sparkWidth)

	s.logger.Debug("[insights] Summarised %d weeks over %d columns", report.Weeks, len(report.Columns))
	return report
}

func (s *InsightService) Print(r *models.DatasetReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)
	w := s.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  SIMULATED MARKET: SALES VS MEDIA SPEND\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if r.Weeks == 0 {
		fmt.Fprintf(w, "  No data\n")
		fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
		return
	}

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Weeks      : \033[1m%d\033[0m (%s → %s)\n", r.Weeks,
		r.FirstWeek.Format(models.WeekLayout), r.LastWeek.Format(models.WeekLayout))
	fmt.Fprintf(w, "  Peak sales : \033[1;32m%.2f\033[0m in week of %s\n", r.PeakSales,
		r.PeakSalesWeek.Format(models.WeekLayout))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Column Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  %-14s %12s %12s %12s %14s\n", "column", "min", "mean", "max", "total")
	for _, c := range r.Columns {
		fmt.Fprintf(w, "  %-14s %12.2f %12.2f %12.2f %14.2f\n", c.Name, c.Min, c.Mean, c.Max, c.Total)
	}
	fmt.Fprintln(w)

	if len(r.SpendShare) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Share of Spend\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, c := range r.Columns {
			name, ok := strings.CutSuffix(c.Name, "_spend")
			if !ok {
				continue
			}
			share := r.SpendShare[name]
			bar := strings.Repeat("█", int(math.Round(share*40)))
			fmt.Fprintf(w, "  %-14s %s %.0f%% (peak %s)\n", name, bar, share*100,
				r.PeakSpend[name].Format(models.WeekLayout))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Weekly Shape\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, c := range r.Columns {
		fmt.Fprintf(w, "  %-14s %s\n", c.Name, r.Sparklines[c.Name])
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func columnStats(name string, values []float64) models.ColumnStats {
	st := models.ColumnStats{Name: name}
	if len(values) == 0 {
		return st
	}
	st.Min, st.Max = values[0], values[0]
	for _, v := range values {
		st.Total += v
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Mean = st.Total / float64(len(values))
	return st
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// sparkline renders values as at most width block characters, averaging
// consecutive values into buckets when there are more values than width.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	buckets := len(values)
	if buckets > width {
		buckets = width
	}

	means := make([]float64, buckets)
	for b := range means {
		lo := b * len(values) / buckets
		hi := (b + 1) * len(values) / buckets
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		means[b] = sum / float64(hi-lo)
	}

	lo, hi := means[0], means[0]
	for _, m := range means {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}

	var sb strings.Builder
	top := len(sparkRunes) - 1
	for _, m := range means {
		idx := 0
		if hi > lo {
			idx = int(math.Round((m - lo) / (hi - lo) * float64(top)))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
