// Package config provides configuration loading and management for volblur.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML. Values
// act as defaults; explicit command-line flags override them.
type Config struct {
	// Processing parameters
	Processing struct {
		// GaussianBlurStdDev is the default smoothing strength in samples.
		// Values <= 0 disable the blur stage.
		GaussianBlurStdDev float64 `yaml:"gaussianBlurStdDev"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// PixelType optionally fixes the output pixel type by name.
		// Empty keeps the input file's own pixel type.
		PixelType string `yaml:"pixelType"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// ShowTimings enables the per-stage timing table after a run
		ShowTimings bool `yaml:"showTimings"`

		// ExtractSlices determines whether preview slices are exported
		// after a successful run
		ExtractSlices bool `yaml:"extractSlices"`

		// SlicesDir is the directory preview slices are written to
		SlicesDir string `yaml:"slicesDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.GaussianBlurStdDev = 0

	// Set default output parameters
	cfg.Output.PixelType = ""
	cfg.Output.Verbose = true
	cfg.Output.ShowTimings = false
	cfg.Output.ExtractSlices = false
	cfg.Output.SlicesDir = "extracted_slices"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
