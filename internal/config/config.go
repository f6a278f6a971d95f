// Package config loads and validates sweep configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"k4sweep/internal/score"
)

// Config holds every tunable of a sweep run. Zero values are filled from
// Default before validation, so a partial YAML file only overrides what it
// names.
type Config struct {
	Period         int           `yaml:"period"`
	EnforceAnchors *bool         `yaml:"enforce_anchors"`
	TopN           int           `yaml:"topn"`
	PhaseOffsets   []int         `yaml:"phase_offsets"`
	Letters        string        `yaml:"letters"`
	Workers        int           `yaml:"workers"`
	FreeCeiling    int           `yaml:"free_ceiling"`
	WindowRadius   int           `yaml:"window_radius"`
	Weights        score.Weights `yaml:"weights"`
	FunctionWords  []string      `yaml:"function_words"`
}

// Default returns the primary-run configuration: period 27, anchors
// enforced, top 100, offsets {0,+1,-1,+14}.
func Default() Config {
	enforce := true
	return Config{
		Period:         27,
		EnforceAnchors: &enforce,
		TopN:           100,
		PhaseOffsets:   []int{0, 1, -1, 14},
		Letters:        "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		FreeCeiling:    3,
		WindowRadius:   score.DefaultWindowRadius,
		Weights:        score.DefaultWeights(),
		FunctionWords:  score.DefaultFunctionWords,
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML bytes over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the model cannot run with.
func (c Config) Validate() error {
	if c.Period < 2 {
		return fmt.Errorf("period must be at least 2, got %d", c.Period)
	}
	if c.TopN < 1 {
		return fmt.Errorf("topn must be positive, got %d", c.TopN)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.WindowRadius < 1 {
		return fmt.Errorf("window_radius must be positive, got %d", c.WindowRadius)
	}
	if len(c.Letters) == 0 {
		return fmt.Errorf("letters must not be empty")
	}
	for _, w := range c.FunctionWords {
		if w == "" {
			return fmt.Errorf("function_words must not contain empty entries")
		}
	}
	return nil
}

// Enforce reports whether anchors are enforced (defaults to true).
func (c Config) Enforce() bool {
	return c.EnforceAnchors == nil || *c.EnforceAnchors
}
