package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EngineEnv overrides the container engine binary, e.g. "podman"
const EngineEnv = "DOCKER_CONVERT_ENGINE"

// Config represents the application configuration
type Config struct {
	Engine   EngineConfig  `yaml:"engine"`
	Keywords []string      `yaml:"keywords"`
	Output   OutputConfig  `yaml:"output"`
	Secrets  SecretsConfig `yaml:"secrets"`
}

// EngineConfig selects the container engine and how it is invoked
type EngineConfig struct {
	Binary      string   `yaml:"binary"`
	HistoryArgs []string `yaml:"history_args"`
	ImagesArgs  []string `yaml:"images_args"`
}

// OutputConfig controls where generated Dockerfiles are written
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// SecretsConfig controls the secret scan of reconstructed instructions
type SecretsConfig struct {
	Disabled bool `yaml:"disabled"`
}

// LoadConfig loads configuration from a YAML file. An empty path yields the
// zero configuration, which every consumer fills with its own defaults.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if binary := os.Getenv(EngineEnv); binary != "" {
		config.Engine.Binary = binary
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values that would make every history line match
func (c *Config) Validate() error {
	for i, keyword := range c.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("invalid config: keywords[%d] is empty", i)
		}
	}
	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("invalid config: output prefix %q contains a path separator", c.Output.Prefix)
	}
	return nil
}
