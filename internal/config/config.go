// Package config parses the recognized run options (spec.md §6):
// include_missing, time_budget_s, w_avail, w_meet, w_section, seed. An
// optional YAML file supplies defaults overridden by CLI flags; grounded
// on gopkg.in/yaml.v3, present in the pack via katalvlaran-lvlath/go.mod.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udp-cs/groupassign/internal/domain"
)

// Config holds the recognized options from spec.md §6.
type Config struct {
	IncludeMissing bool  `yaml:"include_missing"`
	TimeBudgetS    int   `yaml:"time_budget_s"`
	WAvail         int   `yaml:"w_avail"`
	WMeet          int   `yaml:"w_meet"`
	WSection       int   `yaml:"w_section"`
	Seed           int64 `yaml:"seed"`
}

// Default returns the documented defaults: include_missing=false,
// time_budget_s=600, weights 8/4/1, seed=0.
func Default() Config {
	w := domain.DefaultWeights()
	return Config{
		IncludeMissing: false,
		TimeBudgetS:    600,
		WAvail:         w.Avail,
		WMeet:          w.Meet,
		WSection:       w.Section,
		Seed:           0,
	}
}

// Load reads a YAML config file and overlays it on the defaults. A
// missing path is not an error: callers pass "" to use defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Weights extracts the SoftConflictWeights, validating the strict
// ordering invariant (spec.md §3).
func (c Config) Weights() (domain.SoftConflictWeights, error) {
	w := domain.SoftConflictWeights{Avail: c.WAvail, Meet: c.WMeet, Section: c.WSection}
	if !w.Valid() {
		return w, fmt.Errorf("soft conflict weights must satisfy w_avail(%d) > w_meet(%d) > w_section(%d) > 0", w.Avail, w.Meet, w.Section)
	}
	return w, nil
}
