package main

import (
	"github.com/spf13/pflag"

	"k4sweep/internal/cipher"
	"k4sweep/internal/config"
	"k4sweep/internal/constrain"
	"k4sweep/internal/score"
	"k4sweep/internal/search"
)

// modelFlags are the knobs shared by the sweep-like commands. Flag values
// override whatever the config file set.
type modelFlags struct {
	configPath string
	period     int
	topn       int
	letters    string
	workers    int
	noAnchors  bool
	ceiling    int
}

// resolve loads the config file (if given) and applies flag overrides.
// A flag left at its sentinel keeps the config value.
func (m *modelFlags) resolve() (config.Config, error) {
	cfg := config.Default()
	if m.configPath != "" {
		var err error
		cfg, err = config.Load(m.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if m.period > 0 {
		cfg.Period = m.period
	}
	if m.topn > 0 {
		cfg.TopN = m.topn
	}
	if m.letters != "" {
		cfg.Letters = m.letters
	}
	if m.workers > 0 {
		cfg.Workers = m.workers
	}
	if m.ceiling > 0 {
		cfg.FreeCeiling = m.ceiling
	}
	if m.noAnchors {
		enforce := false
		cfg.EnforceAnchors = &enforce
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (m *modelFlags) register(f *pflag.FlagSet) {
	f.StringVar(&m.configPath, "config", "", "YAML config file (flags override it)")
	f.IntVar(&m.period, "period", 0, "Keystream period (default 27)")
	f.IntVar(&m.topn, "topn", 0, "Candidates to retain (default 100)")
	f.StringVar(&m.letters, "letters", "", "Fill alphabet for free residues (default A-Z)")
	f.IntVar(&m.workers, "workers", 0, "Search workers (default: all CPUs)")
	f.IntVar(&m.ceiling, "free-ceiling", 0, "Max free residues before refusing the search (default 3)")
	f.BoolVar(&m.noAnchors, "no-anchors", false, "Disable zero-shift enforcement at positions 33 and 74")
}

// buildParams assembles the constraint model from a resolved config.
func buildParams(cfg config.Config) constrain.Params {
	return constrain.Params{
		Period:         cfg.Period,
		Islands:        cipher.Islands,
		Anchors:        cipher.Anchors,
		EnforceAnchors: cfg.Enforce(),
		FreeCeiling:    cfg.FreeCeiling,
	}
}

func buildScorer(cfg config.Config) *score.Scorer {
	return score.New(cfg.Weights, cfg.FunctionWords, cipher.Islands, cfg.WindowRadius)
}

func buildOptions(cfg config.Config) search.Options {
	return search.Options{
		TopN:    cfg.TopN,
		Workers: cfg.Workers,
		Letters: cfg.Letters,
		Islands: cipher.Islands,
	}
}
