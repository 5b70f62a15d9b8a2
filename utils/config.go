package utils

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command line options that may be set from a YAML
// configuration file. Unset fields leave the defaults untouched.
type fileConfig struct {
	Task       *string `yaml:"task"`
	Order      *string `yaml:"order"`
	MaxPasses  *uint   `yaml:"max-passes"`
	CSE        *bool   `yaml:"cse"`
	DeleteVars *bool   `yaml:"delete-vars"`
	NoUnroll   *bool   `yaml:"no-unroll"`
	SatCheck   *bool   `yaml:"sat-check"`
	Metrics    *bool   `yaml:"metrics"`
	Verbose    *bool   `yaml:"verbose"`
	NoColorize *bool   `yaml:"no-colorize"`
}

// loadConfig applies the configuration file at path, skipping every option
// explicitly given on the command line.
func loadConfig(path string, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return applyConfig(data, explicit)
}

func applyConfig(data []byte, explicit map[string]bool) error {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	setString := func(name string, dst *string, v *string) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}
	setBool := func(name string, dst *bool, v *bool) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}

	setString("task", &opts.task, cfg.Task)
	setString("order", &opts.order, cfg.Order)
	if cfg.MaxPasses != nil && !explicit["max-passes"] {
		opts.maxPasses = *cfg.MaxPasses
	}
	setBool("cse", &opts.cse, cfg.CSE)
	setBool("delete-vars", &opts.deleteVars, cfg.DeleteVars)
	setBool("no-unroll", &opts.noUnroll, cfg.NoUnroll)
	setBool("sat-check", &opts.satCheck, cfg.SatCheck)
	setBool("metrics", &opts.metrics, cfg.Metrics)
	setBool("verbose", &opts.verbose, cfg.Verbose)
	setBool("no-colorize", &opts.noColorize, cfg.NoColorize)
	return nil
}
