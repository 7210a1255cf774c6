package life

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mad-life/pkg/grid"
	"mad-life/pkg/history"
	"mad-life/pkg/patterns"
	"mad-life/pkg/rules"
)

// Config controls the grid, rule and termination settings of a Life run.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Grid   string `yaml:"grid"`
	Rule   string `yaml:"rule"`

	History        int    `yaml:"history"`
	HistoryPolicy  string `yaml:"history_policy"`
	MaxGenerations int    `yaml:"max_generations"`

	Seed     int64                `yaml:"seed"`
	Density  float64              `yaml:"density"`
	Workers  int                  `yaml:"workers"`
	Patterns []patterns.Placement `yaml:"patterns"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         128,
		Height:        128,
		Grid:          string(grid.KindSparse),
		Rule:          "conway",
		History:       history.DefaultCapacity,
		HistoryPolicy: history.FIFO.String(),
		Seed:          42,
		Density:       0.3,
		Workers:       1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; Validate reports semantic problems.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overrides fields from flag-style key/value pairs.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["grid"]; ok && v != "" {
		c.Grid = v
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["history"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.History = parsed
		}
	}
	if v, ok := cfg["history_policy"]; ok && v != "" {
		c.HistoryPolicy = v
	}
	if v, ok := cfg["max_generations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxGenerations = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["patterns"]; ok {
		c.Patterns = nil
		for _, item := range strings.Split(v, ";") {
			if item = strings.TrimSpace(item); item == "" {
				continue
			}
			if p, err := patterns.ParsePlacement(item); err == nil {
				c.Patterns = append(c.Patterns, p)
			}
		}
	}
}

// LoadFile reads a YAML config on top of the defaults.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("life: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("life: parse config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %dx%d", grid.ErrInvalidSize, c.Width, c.Height))
	}
	if _, err := grid.ParseKind(c.Grid); err != nil {
		errs = append(errs, err)
	}
	if _, err := rules.ByName(c.Rule); err != nil {
		errs = append(errs, err)
	}
	if c.History <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", history.ErrInvalidCapacity, c.History))
	}
	if _, err := history.ParsePolicy(c.HistoryPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.MaxGenerations < 0 {
		errs = append(errs, fmt.Errorf("life: max generations must not be negative, got %d", c.MaxGenerations))
	}
	if c.Density < 0 || c.Density > 1 {
		errs = append(errs, fmt.Errorf("life: density must be within [0,1], got %v", c.Density))
	}
	for _, p := range c.Patterns {
		if _, err := patterns.ByName(p.Name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
