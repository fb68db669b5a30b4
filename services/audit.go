package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"mmm-datagen/models"
	"mmm-datagen/utils"
)

// ErrDatasetInvalid is returned by Audit when any check fails.
var ErrDatasetInvalid = errors.New("dataset failed audit")

const week = 7 * 24 * time.Hour

// Auditor checks a dataset's structural invariants before it is handed to
// a sink: aligned lengths, consecutive weeks, finite values and spend
// floors.
type Auditor struct {
	logger *utils.Logger
	floors map[string]float64
}

// NewAuditor creates an Auditor. floors maps channel name to its minimum
// allowed spend; channels absent from the map must be non-negative.
func NewAuditor(logger *utils.Logger, floors map[string]float64) *Auditor {
	return &Auditor{logger: logger, floors: floors}
}

// Audit returns nil for a consistent dataset, or ErrDatasetInvalid wrapping
// the list of problems found.
func (a *Auditor) Audit(ds *models.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: nil dataset", ErrDatasetInvalid)
	}

	var issues []string
	n := ds.Len()
	if n == 0 {
		issues = append(issues, "no weeks")
	}
	if len(ds.Sales) != n {
		issues = append(issues, fmt.Sprintf("sales has %d values, want %d", len(ds.Sales), n))
	}

	for i := 1; i < n; i++ {
		if gap := ds.Weeks[i].Sub(ds.Weeks[i-1]); gap != week {
			issues = append(issues, fmt.Sprintf("week %d is %v after week %d", i, gap, i-1))
			break
		}
	}

	for _, c := range ds.Channels {
		if len(c.Spend) != n {
			issues = append(issues, fmt.Sprintf("%s has %d values, want %d", models.SpendColumn(c.Name), len(c.Spend), n))
			continue
		}
		floor := a.floors[c.Name]
		for i, v := range c.Spend {
			if !isFinite(v) {
				issues = append(issues, fmt.Sprintf("%s[%d] is not finite", models.SpendColumn(c.Name), i))
				break
			}
			if v < floor {
				issues = append(issues, fmt.Sprintf("%s[%d] = %.2f below floor %.2f", models.SpendColumn(c.Name), i, v, floor))
				break
			}
		}
	}

	for i, v := range ds.Sales {
		if !isFinite(v) {
			issues = append(issues, fmt.Sprintf("sales[%d] is not finite", i))
			break
		}
	}

	if len(issues) == 0 {
		a.logger.Debug("[audit] %d weeks, %d channels OK", n, len(ds.Channels))
		return nil
	}
	for _, is := range issues {
		a.logger.Warn("[audit] %s", is)
	}
	return fmt.Errorf("%w: %s", ErrDatasetInvalid, strings.Join(issues, "; "))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
