// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Provider
	ProviderURL string `json:"provider_url,omitempty"` // Provider API base URL
	APIKey      string `json:"api_key,omitempty"`      // Provider API key
	SiteID      string `json:"site_id,omitempty"`      // Provider site identifier

	// Local fixtures (alternative to fetching from the provider)
	Keywords string `json:"keywords,omitempty"` // Path to keyword list JSON
	Reports  string `json:"reports,omitempty"`  // Path to SERP report list JSON
	Links    string `json:"links,omitempty"`    // Path to link report JSON

	// Site
	Domain string `json:"domain,omitempty"` // Site domain used for link matching

	// Layout
	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`

	// Cache
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL connection URL for the score/map cache
	CacheTTLHours int    `json:"cache_ttl_hours,omitempty"` // Cache freshness window

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values. Required
// fields are not checked here; CLI flag validation handles those after
// merging.
func (c *Config) Validate() error {
	// A provider URL and local fixtures are mutually exclusive sources.
	if c.ProviderURL != "" && (c.Keywords != "" || c.Reports != "" || c.Links != "") {
		return fmt.Errorf("config error: 'provider_url' and local fixture paths are mutually exclusive")
	}

	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.ViewportWidth < 0 || c.ViewportHeight < 0 {
		return fmt.Errorf("config error: viewport dimensions must be non-negative")
	}

	for _, path := range []string{c.Keywords, c.Reports, c.Links} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: fixture file not found: %s", path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProviderURL == "" {
		result.ProviderURL = defaults.ProviderURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SiteID == "" {
		result.SiteID = defaults.SiteID
	}
	if result.Keywords == "" {
		result.Keywords = defaults.Keywords
	}
	if result.Reports == "" {
		result.Reports = defaults.Reports
	}
	if result.Links == "" {
		result.Links = defaults.Links
	}
	if result.Domain == "" {
		result.Domain = defaults.Domain
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}

	if result.ViewportWidth == 0 {
		if defaults.ViewportWidth > 0 {
			result.ViewportWidth = defaults.ViewportWidth
		} else {
			result.ViewportWidth = 1200
		}
	}
	if result.ViewportHeight == 0 {
		if defaults.ViewportHeight > 0 {
			result.ViewportHeight = defaults.ViewportHeight
		} else {
			result.ViewportHeight = 800
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
