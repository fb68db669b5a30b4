// Package generator synthesizes weekly marketing-mix ground-truth data:
// raw media spend, adstock carry-over, Hill saturation and a sales signal
// with seasonality and noise. Output is deterministic for a given seed.
package generator

import (
	"fmt"
	"time"

	"mmm-datagen/models"
	"mmm-datagen/utils"
)

// Generator turns (seed, weeks) into a Dataset under a fixed Config.
type Generator struct {
	cfg    Config
	logger *utils.Logger
}

// New validates cfg and returns a ready-to-use Generator.
func New(cfg Config, logger *utils.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Generator{cfg: cfg, logger: logger}, nil
}

// Config returns the configuration the Generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate builds the full dataset for weeks weeks. The random source is
// created here and consumed in a fixed order: channel spend in channel
// order, then sales noise.
func (g *Generator) Generate(seed int64, weeks int) (*models.Dataset, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("%w: weeks must be positive, got %d", ErrInvalidParameter, weeks)
	}
	start := time.Now()
	defer g.logger.Elapsed("generate", start)

	r := NewRand(seed)

	spend := SimulateSpend(r, weeks, g.cfg.Channels)

	effects := make([][]float64, len(g.cfg.Channels))
	for i, ch := range g.cfg.Channels {
		effects[i] = Saturate(Adstock(spend[i], ch.Alpha), ch.HalfSaturation)
		if s, e := CampaignWindow(weeks, ch.Campaign); e > s {
			g.logger.Debug("[generator] %s campaign +%.0f over weeks [%d, %d)", ch.Name, ch.Campaign.Boost, s, e)
		}
	}

	sales := ComposeSales(r, g.cfg, effects, SeasonalityCurve(weeks, g.cfg.Seasonality))

	ds := &models.Dataset{
		Seed:     seed,
		Weeks:    Timeline(g.cfg.Anchor, weeks),
		Channels: make([]models.ChannelSpend, len(g.cfg.Channels)),
		Sales:    sales,
	}
	for i, ch := range g.cfg.Channels {
		ds.Channels[i] = models.ChannelSpend{Name: ch.Name, Spend: spend[i]}
	}

	g.logger.Info("[generator] Generated %d weeks (seed %d, %d channels)", weeks, seed, len(g.cfg.Channels))
	return ds, nil
}

// Timeline returns weeks consecutive dates spaced seven days apart from anchor.
func Timeline(anchor time.Time, weeks int) []time.Time {
	out := make([]time.Time, weeks)
	for t := range out {
		out[t] = anchor.AddDate(0, 0, 7*t)
	}
	return out
}

// Generate runs the default TV + Search model.
func Generate(seed int64, weeks int) (*models.Dataset, error) {
	g, err := New(DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	return g.Generate(seed, weeks)
}
