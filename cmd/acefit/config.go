package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aceforge/acefit/dataset"
)

// fitConfig is the YAML configuration of a fitting run. Only the parts the
// assessment tool needs are interpreted here; solver and export settings
// belong to downstream tooling.
type fitConfig struct {
	Dataset string        `yaml:"dataset"`
	Keys    keysConfig    `yaml:"keys"`
	Weights weightsConfig `yaml:"weights"`
	Logging loggingConfig `yaml:"logging"`
}

// keysConfig overrides the requested observable key names. An explicitly
// empty value in the file disables the observable; an omitted field keeps
// the library default.
type keysConfig struct {
	Energy     *string `yaml:"energy"`
	Force      *string `yaml:"force"`
	Virial     *string `yaml:"virial"`
	SiteEnergy *string `yaml:"site_energy"`
	Mask       *string `yaml:"mask"`
	Group      *string `yaml:"group"`
}

// weightsConfig is the per-group weight table.
type weightsConfig map[string]struct {
	E float64 `yaml:"energy"`
	F float64 `yaml:"force"`
	V float64 `yaml:"virial"`
}

// loggingConfig holds logging settings.
type loggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// loadConfig reads and decodes the fit configuration file.
func loadConfig(path string) (*fitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg fitConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Dataset == "" {
		return nil, fmt.Errorf("config %s: dataset path is required", path)
	}

	return &cfg, nil
}

// recordOptions translates the configuration into dataset options.
func (c *fitConfig) recordOptions() []dataset.Option {
	var opts []dataset.Option
	if c.Keys.Energy != nil {
		opts = append(opts, dataset.WithEnergyKey(*c.Keys.Energy))
	}
	if c.Keys.Force != nil {
		opts = append(opts, dataset.WithForceKey(*c.Keys.Force))
	}
	if c.Keys.Virial != nil {
		opts = append(opts, dataset.WithVirialKey(*c.Keys.Virial))
	}
	if c.Keys.SiteEnergy != nil {
		opts = append(opts, dataset.WithSiteEnergyKey(*c.Keys.SiteEnergy))
	}
	if c.Keys.Mask != nil {
		opts = append(opts, dataset.WithMaskKey(*c.Keys.Mask))
	}
	if c.Keys.Group != nil {
		opts = append(opts, dataset.WithGroupKey(*c.Keys.Group))
	}
	if len(c.Weights) > 0 {
		table := dataset.WeightTable{}
		for group, w := range c.Weights {
			table[group] = dataset.Weights{E: w.E, F: w.F, V: w.V}
		}
		opts = append(opts, dataset.WithWeightTable(table))
	}

	return opts
}
