package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvScout       = "FM_SCOUT_SCOUT"
	EnvSquad       = "FM_SCOUT_SQUAD"
	EnvClub        = "FM_SCOUT_CLUB"
	EnvFreeAgent   = "FM_SCOUT_FREE_AGENT_DATE"
	EnvPort        = "FM_SCOUT_PORT"
	EnvCORSOrigins = "FM_SCOUT_CORS_ORIGINS"
	EnvAPIKey      = "GEMINI_API_KEY"
)

// FromEnv reads configuration from environment variables.
// CORS origins are comma separated.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Scout:         os.Getenv(EnvScout),
		Squad:         os.Getenv(EnvSquad),
		Club:          os.Getenv(EnvClub),
		FreeAgentDate: os.Getenv(EnvFreeAgent),
		APIKey:        os.Getenv(EnvAPIKey),
	}

	if value := os.Getenv(EnvPort); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		cfg.Port = port
	}

	if value := os.Getenv(EnvCORSOrigins); value != "" {
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg, nil
}

// Resolve layers the configuration: c wins over the config file at path, which
// wins over the environment. An empty path skips the file.
func (c *Config) Resolve(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	base := *env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		base = file.MergeWithDefaults(*env)
		base.Verbose = base.Verbose || env.Verbose
	}

	merged := c.MergeWithDefaults(base)
	merged.Verbose = c.Verbose || base.Verbose
	merged.SchemaCheck = c.SchemaCheck || base.SchemaCheck
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
