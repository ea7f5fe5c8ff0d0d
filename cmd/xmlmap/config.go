package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional xmlmap configuration file.
type Config struct {
	MappingFile  string `yaml:"mapping_file"`
	MacroEnabled bool   `yaml:"macro_enabled"`
	InferTypes   bool   `yaml:"infer_types"`
	Pretty       bool   `yaml:"pretty"`
	LogLevel     string `yaml:"log_level"` // debug | info | warn | error
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.MappingFile == "" {
		c.MappingFile = "mapping.json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}
