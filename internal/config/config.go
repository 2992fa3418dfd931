// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	CacheDir  string `json:"cache_dir,omitempty"`  // Directory for cached search results
	OutputDir string `json:"output_dir,omitempty"` // Directory for calendar artifact files

	// Pipeline tuning
	ResultsPerQuery int `json:"results_per_query,omitempty"` // Organic results requested per query
	MaxTokens       int `json:"max_tokens,omitempty"`        // Research token budget for the prompt

	// Behavior
	SerpAPIKey   string `json:"serpapi_key,omitempty"`   // Search provider API key
	AnthropicKey string `json:"anthropic_key,omitempty"` // Generation provider API key
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL (optional run history)
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// API keys are deliberately not checked here; a missing key fails at first use.
func (c *Config) Validate() error {
	if c.ResultsPerQuery < 0 {
		return fmt.Errorf("config error: 'results_per_query' must be non-negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CacheDir == "" {
		result.CacheDir = defaults.CacheDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SerpAPIKey == "" {
		result.SerpAPIKey = defaults.SerpAPIKey
	}
	if result.AnthropicKey == "" {
		result.AnthropicKey = defaults.AnthropicKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.ResultsPerQuery == 0 {
		result.ResultsPerQuery = defaults.ResultsPerQuery
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
