package generator

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidParameter reports a generation request or configuration that
// cannot produce a dataset. It is returned before any randomness is drawn.
var ErrInvalidParameter = errors.New("invalid parameter")

// Channel identities of the default configuration.
const (
	ChannelTV     = "tv"
	ChannelSearch = "search"
)

// Distribution names the spend distribution of a channel.
type Distribution string

const (
	DistGamma  Distribution = "gamma"
	DistNormal Distribution = "normal"
)

// SpendModel describes how raw weekly spend is drawn for a channel.
// Values below Floor are clamped to Floor.
type SpendModel struct {
	Distribution Distribution `yaml:"distribution" validate:"oneof=gamma normal"`
	Shape        float64      `yaml:"shape,omitempty" validate:"required_if=Distribution gamma,gte=0"`
	Scale        float64      `yaml:"scale,omitempty" validate:"required_if=Distribution gamma,gte=0"`
	Mean         float64      `yaml:"mean,omitempty"`
	StdDev       float64      `yaml:"std_dev,omitempty" validate:"gte=0"`
	Floor        float64      `yaml:"floor" validate:"gte=0"`
}

// Campaign is a flat additive boost over Length consecutive weeks starting
// at weeks/StartDivisor. Length 0 disables it.
type Campaign struct {
	StartDivisor int     `yaml:"start_divisor" validate:"required_with=Length,gte=0"`
	Length       int     `yaml:"length" validate:"gte=0"`
	Boost        float64 `yaml:"boost"`
}

// ChannelConfig is the immutable per-channel parameter set.
type ChannelConfig struct {
	Name           string     `yaml:"name" validate:"required,alphanum"`
	Spend          SpendModel `yaml:"spend"`
	Campaign       Campaign   `yaml:"campaign"`
	Alpha          float64    `yaml:"alpha" validate:"gte=0,lt=1"`
	HalfSaturation float64    `yaml:"half_saturation" validate:"gt=0"`
	Weight         float64    `yaml:"weight"`
	UnitScale      float64    `yaml:"unit_scale"`
}

// Seasonality is the multiplier 1 + Amplitude*sin(2*pi*t/Period).
type Seasonality struct {
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period" validate:"gt=0"`
}

// Config drives a Generator. Channels are simulated, and draw randomness,
// in slice order.
type Config struct {
	Anchor      time.Time       `yaml:"anchor" validate:"required"`
	Baseline    float64         `yaml:"baseline"`
	NoiseStdDev float64         `yaml:"noise_std_dev" validate:"gte=0"`
	Seasonality Seasonality     `yaml:"seasonality"`
	Channels    []ChannelConfig `yaml:"channels" validate:"required,min=1,dive"`
}

// DefaultAnchor is the first Sunday on or after 2021-01-01.
var DefaultAnchor = time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC)

// DefaultConfig returns the reference TV + Search model.
func DefaultConfig() Config {
	return Config{
		Anchor:      DefaultAnchor,
		Baseline:    10000,
		NoiseStdDev: 500,
		Seasonality: Seasonality{Amplitude: 0.2, Period: 52},
		Channels: []ChannelConfig{
			{
				Name:           ChannelTV,
				Spend:          SpendModel{Distribution: DistGamma, Shape: 2, Scale: 1000},
				Campaign:       Campaign{StartDivisor: 3, Length: 10, Boost: 5000},
				Alpha:          0.6,
				HalfSaturation: 3000,
				Weight:         0.5,
				UnitScale:      50000,
			},
			{
				Name:           ChannelSearch,
				Spend:          SpendModel{Distribution: DistNormal, Mean: 2000, StdDev: 500, Floor: 500},
				Alpha:          0.1,
				HalfSaturation: 500,
				Weight:         0.3,
				UnitScale:      20000,
			},
		},
	}
}

var validate = validator.New()

// Validate checks the configuration and wraps failures in ErrInvalidParameter.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	seen := make(map[string]struct{}, len(c.Channels))
	for _, ch := range c.Channels {
		if _, dup := seen[ch.Name]; dup {
			return fmt.Errorf("%w: duplicate channel %q", ErrInvalidParameter, ch.Name)
		}
		seen[ch.Name] = struct{}{}
	}
	return nil
}

// Channel returns the configuration of the named channel.
func (c Config) Channel(name string) (ChannelConfig, bool) {
	for _, ch := range c.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return ChannelConfig{}, false
}

// LoadConfig reads a YAML file over DefaultConfig. Keys absent from the file
// keep their default value; a channels list replaces the default channels.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("generator: read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("generator: parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SpendFloors maps each channel to the lowest spend it can produce.
func (c Config) SpendFloors() map[string]float64 {
	floors := make(map[string]float64, len(c.Channels))
	for _, ch := range c.Channels {
		floors[ch.Name] = ch.Spend.Floor
	}
	return floors
}
