// Package config loads workspace-level indexer tunables from an
// optional `.tcl-lsp.yaml` file at the workspace root.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the indexer's configurable knobs.
// Zero-value Config is invalid; use Default() or Load().
type Config struct {
	// MaxDepth is loaded from the config file but nothing reads it:
	// the validator, walker and resolver all use the fixed
	// ast.MaxDepth.
	MaxDepth int `yaml:"maxDepth"`

	// MaxFiles caps how many files a single workspace scan will index,
	// as a safety valve against runaway directory trees.
	MaxFiles int `yaml:"maxFiles"`

	// Workers is the bounded worker-pool size for the background
	// indexer.
	Workers int `yaml:"workers"`

	// ParseTimeout bounds a single external-parser invocation.
	ParseTimeout time.Duration `yaml:"parseTimeout"`
}

// FileName is the config file's name, looked up at the workspace root.
const FileName = ".tcl-lsp.yaml"

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		MaxDepth:     50,
		MaxFiles:     20000,
		Workers:      6,
		ParseTimeout: 10 * time.Second,
	}
}

// Load reads FileName from workspaceRoot, if present, overlaying any
// set fields on top of Default(). A missing file is not an error —
// it just means every default applies.
func Load(workspaceRoot string) (Config, error) {
	cfg := Default()

	path := filepath.Join(workspaceRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}
	raw.applyTo(&cfg)
	return cfg, nil
}

// rawConfig mirrors Config but with pointer fields, so an absent YAML
// key is distinguishable from an explicit zero and never stomps a
// default.
type rawConfig struct {
	MaxDepth     *int    `yaml:"maxDepth"`
	MaxFiles     *int    `yaml:"maxFiles"`
	Workers      *int    `yaml:"workers"`
	ParseTimeout *string `yaml:"parseTimeout"`
}

func (r rawConfig) applyTo(cfg *Config) {
	if r.MaxDepth != nil {
		cfg.MaxDepth = *r.MaxDepth
	}
	if r.MaxFiles != nil {
		cfg.MaxFiles = *r.MaxFiles
	}
	if r.Workers != nil {
		cfg.Workers = *r.Workers
	}
	if r.ParseTimeout != nil {
		if d, err := time.ParseDuration(*r.ParseTimeout); err == nil {
			cfg.ParseTimeout = d
		}
	}
}
