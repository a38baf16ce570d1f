// Package config handles configuration loading and management for jest.
//
// It provides functionality for:
//   - Loading configuration from jest.config.json / jest.config.yaml files
//   - Default configuration values
//   - Merging file configuration with programmatic overrides
package config
