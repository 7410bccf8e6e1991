// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/fm-scout/internal/fetch"
)

// DateLayout is the layout of FreeAgentDate, matching the export's Expires column.
const DateLayout = "2/1/2006"

// Defaults applied by MergeWithDefaults when neither the file nor the environment sets a value.
const (
	DefaultPort = 8080
	DefaultTopN = 5
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Scout string `json:"scout,omitempty"` // Scouting export: file path or http(s) URL
	Squad string `json:"squad,omitempty"` // Own-squad export: file path or http(s) URL

	// Squad
	Club string `json:"club,omitempty"` // Club name used in squad reviews
	TopN int    `json:"top_n,omitempty" validate:"gte=0"`

	// Normalization
	FreeAgentDate string `json:"free_agent_date,omitempty"` // Expiry given to players without a club (d/m/yyyy)

	// Server
	Port        int      `json:"port,omitempty" validate:"gte=0,lte=65535"`
	CORSOrigins []string `json:"cors_origins,omitempty" validate:"dive,required"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	SchemaCheck bool   `json:"schema_check,omitempty"` // Validate JSON outputs against schemas/
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.FreeAgentDate != "" {
		if _, err := time.Parse(DateLayout, c.FreeAgentDate); err != nil {
			return fmt.Errorf("config error: 'free_agent_date' must be day/month/year: %w", err)
		}
	}

	// Local export files must exist; URLs are checked when fetched
	for field, path := range map[string]string{"scout": c.Scout, "squad": c.Squad} {
		if path == "" || fetch.IsURL(path) {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", field, path)
		}
	}

	return nil
}

// FreeAgent returns the parsed free agent date, or the zero time when unset.
func (c *Config) FreeAgent() time.Time {
	t, err := time.Parse(DateLayout, c.FreeAgentDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Scout == "" {
		result.Scout = defaults.Scout
	}
	if result.Squad == "" {
		result.Squad = defaults.Squad
	}
	if result.Club == "" {
		result.Club = defaults.Club
	}
	if result.FreeAgentDate == "" {
		result.FreeAgentDate = defaults.FreeAgentDate
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = append([]string(nil), defaults.CORSOrigins...)
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}
	if result.TopN == 0 {
		if defaults.TopN > 0 {
			result.TopN = defaults.TopN
		} else {
			result.TopN = DefaultTopN
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
