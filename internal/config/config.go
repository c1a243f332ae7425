// Package config loads the optional on-disk configuration for typeview.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk YAML configuration shape. Zero fields fall back
// to the defaults applied by Default.
type Config struct {
	Checker string   `yaml:"checker"`
	Args    []string `yaml:"args"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Batch   int      `yaml:"batch"`
	Editor  string   `yaml:"editor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Checker: "mypy",
		Batch:   50,
	}
}

// Load reads a YAML config file from the provided path.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return applyDefaults(cfg), nil
}

// Discover searches root for a project-local config file. It returns the
// defaults and an empty path when none exists.
func Discover(root string) (Config, string, error) {
	for _, name := range []string{".typeview.yml", ".typeview.yaml", "typeview.yml", "typeview.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		cfg, err := Load(p)
		return cfg, p, err
	}
	return Default(), "", nil
}

func applyDefaults(cfg Config) Config {
	def := Default()
	if cfg.Checker == "" {
		cfg.Checker = def.Checker
	}
	if cfg.Batch <= 0 {
		cfg.Batch = def.Batch
	}
	return cfg
}
