package generator

import (
	"math"
	"math/rand/v2"
)

// SeasonalityCurve returns 1 + amplitude*sin(2*pi*t/period) for each week
// index t. It depends on the index only, never the calendar date.
func SeasonalityCurve(weeks int, s Seasonality) []float64 {
	out := make([]float64, weeks)
	for t := range out {
		out[t] = 1 + s.Amplitude*math.Sin(2*math.Pi*float64(t)/s.Period)
	}
	return out
}

// ComposeSales combines the baseline and the per-channel effects, scaled by
// seasonality, then adds Normal(0, NoiseStdDev) noise drawn from r. effects
// is ordered like cfg.Channels. Sales are not clamped and may go negative.
func ComposeSales(r *rand.Rand, cfg Config, effects [][]float64, seasonality []float64) []float64 {
	sales := make([]float64, len(seasonality))
	for t := range sales {
		level := cfg.Baseline
		for i, ch := range cfg.Channels {
			level += ch.Weight * ch.UnitScale * effects[i][t]
		}
		sales[t] = level * seasonality[t]
	}

	// Noise is drawn only after every week's deterministic level is known.
	for t := range sales {
		sales[t] += normal(r, 0, cfg.NoiseStdDev)
	}
	return sales
}
