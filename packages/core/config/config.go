package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the jest configuration
type Config struct {
	Bail            *bool    `json:"bail,omitempty" yaml:"bail,omitempty"`
	Verbose         *bool    `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor         *bool    `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Parallel        *bool    `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Concurrency     int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	RatePerSec      float64  `json:"ratePerSec,omitempty" yaml:"ratePerSec,omitempty"`
	NameFilter      string   `json:"nameFilter,omitempty" yaml:"nameFilter,omitempty"`
	Reporters       []string `json:"reporters,omitempty" yaml:"reporters,omitempty"`
	OutputDir       string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	UpdateSnapshots *bool    `json:"updateSnapshots,omitempty" yaml:"updateSnapshots,omitempty"`
	SnapshotDir     string   `json:"snapshotDir,omitempty" yaml:"snapshotDir,omitempty"`
	HistoryPath     string   `json:"historyPath,omitempty" yaml:"historyPath,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetParallel returns the parallel setting, defaulting to false
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetUpdateSnapshots returns the snapshot update setting, defaulting to false
func (c *Config) GetUpdateSnapshots() bool {
	return getBool(c.UpdateSnapshots, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	"jest.config.json",
	".jestrc",
	".jestrc.json",
	"jest.config.yaml",
	"jest.config.yml",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file, picking the
// codec by extension (.yaml/.yml are YAML, everything else JSON).
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}
	if other.RatePerSec > 0 {
		result.RatePerSec = other.RatePerSec
	}
	if other.NameFilter != "" {
		result.NameFilter = other.NameFilter
	}
	if other.OutputDir != "" {
		result.OutputDir = other.OutputDir
	}
	if other.SnapshotDir != "" {
		result.SnapshotDir = other.SnapshotDir
	}
	if other.HistoryPath != "" {
		result.HistoryPath = other.HistoryPath
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.UpdateSnapshots != nil {
		result.UpdateSnapshots = other.UpdateSnapshots
	}

	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
