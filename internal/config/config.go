// Package config holds the tuning knobs for the astrocartography engine.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "5m" style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config tunes sampling densities, solver tolerances and the cache.
//
// The aspect scan settings trade accuracy for speed as a pair: the latitude
// step bounds which Ascendant-aspect crossings can be bracketed at all, and
// the tolerance bounds how tightly each bracket is refined. Halving the step
// roughly doubles the scan cost; tightening the tolerance only adds
// bisection iterations. Tune them together, not separately.
type Config struct {
	// Line sampling.
	MeridianLatSteps int `yaml:"meridian_lat_steps"`
	HorizonLonSteps  int `yaml:"horizon_lon_steps"`

	// Ascendant-aspect scan.
	AspectLonStepDeg   float64 `yaml:"aspect_lon_step_deg"`
	AspectLatStepDeg   float64 `yaml:"aspect_lat_step_deg"`
	AspectToleranceDeg float64 `yaml:"aspect_tolerance_deg"`

	// Paran scan.
	ParanLatStepDeg   float64 `yaml:"paran_lat_step_deg"`
	ParanToleranceDeg float64 `yaml:"paran_tolerance_deg"`

	// Shared solver iteration bound.
	MaxIterations int `yaml:"max_iterations"`

	// Orchestration.
	Workers        int      `yaml:"workers"`
	RequestTimeout Duration `yaml:"request_timeout"`
	CacheTTL       Duration `yaml:"cache_ttl"`
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		MeridianLatSteps:   721,
		HorizonLonSteps:    1441,
		AspectLonStepDeg:   0.5,
		AspectLatStepDeg:   1.0,
		AspectToleranceDeg: 1e-4,
		ParanLatStepDeg:    0.1,
		ParanToleranceDeg:  1e-3,
		MaxIterations:      40,
		Workers:            8,
		RequestTimeout:     Duration(30 * time.Second),
		CacheTTL:           Duration(time.Hour),
	}
}

// Load reads a YAML file over the defaults, so a config file only needs the
// keys it wants to change.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values a solver cannot run with.
func (c Config) Validate() error {
	if c.MeridianLatSteps < 2 {
		return fmt.Errorf("meridian_lat_steps must be >= 2, got %d", c.MeridianLatSteps)
	}
	if c.HorizonLonSteps < 2 {
		return fmt.Errorf("horizon_lon_steps must be >= 2, got %d", c.HorizonLonSteps)
	}
	if c.AspectLonStepDeg <= 0 || c.AspectLatStepDeg <= 0 {
		return fmt.Errorf("aspect scan steps must be positive")
	}
	if c.AspectToleranceDeg <= 0 || c.ParanToleranceDeg <= 0 {
		return fmt.Errorf("solver tolerances must be positive")
	}
	if c.ParanLatStepDeg <= 0 {
		return fmt.Errorf("paran_lat_step_deg must be positive, got %g", c.ParanLatStepDeg)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
