package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI settings. Flags override anything loaded from
// a config file.
type Config struct {
	// Format selects the output renderer: "text" or "html".
	Format string `yaml:"format"`

	// ShowBindings includes field bindings in text output.
	ShowBindings bool `yaml:"show_bindings"`

	// ShowFilters includes filter descriptions in text output.
	ShowFilters bool `yaml:"show_filters"`

	// Verbose enables debug logging of the dispatch loop.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default CLI settings.
func DefaultConfig() Config {
	return Config{
		Format:       "text",
		ShowBindings: true,
		ShowFilters:  true,
	}
}

// LoadConfig reads settings from a YAML file, over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
