package app

import (
	"flag"
	"fmt"
	"strings"

	"mad-life/internal/core"
	"mad-life/internal/sims/life"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q: want key=value", value)
	}
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	ConfigFile string
	Scale      int
	TPS        int
	Seed       int64

	overrides kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 4, TPS: 30}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(core.Names(), ", ")+")")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML file with simulation settings")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.Var(&c.overrides, "set", "simulation setting in key=value form (repeatable)")
}

// Overrides returns the -set pairs as a map. Later pairs win.
func (c *Config) Overrides() map[string]string {
	out := make(map[string]string, len(c.overrides))
	for _, kv := range c.overrides {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Build constructs the selected simulation. A config file takes precedence
// over the registry and is still subject to -set overrides.
func (c *Config) Build() (core.Sim, error) {
	var (
		sim core.Sim
		err error
	)
	if c.ConfigFile != "" {
		cfg, lerr := life.LoadFile(c.ConfigFile)
		if lerr != nil {
			return nil, lerr
		}
		cfg.Apply(c.Overrides())
		sim, err = life.New(cfg)
	} else {
		factory, ok := core.Sims()[c.Sim]
		if !ok {
			return nil, fmt.Errorf("unknown sim %q", c.Sim)
		}
		sim, err = factory(c.Overrides())
	}
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		sim.Reset(c.Seed)
	}
	return sim, nil
}
