// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"pricing-truth/core/parsing"
	"pricing-truth/core/verdict"
	"pricing-truth/internal/logging"
)

// Environment variable names for external API credentials. Keys never live
// in the config file.
const (
	EnvSearchAPIKey = "TAVILY_API_KEY"
	EnvLLMAPIKey    = "COHERE_API_KEY"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains normalization inputs
	Pricing PricingConfig `json:"pricing"`

	// Analysis contains the verdict and comparability constants
	Analysis verdict.Config `json:"analysis"`

	// Search contains search retrieval settings
	Search SearchConfig `json:"search"`

	// LLM contains narrative enrichment settings
	LLM LLMConfig `json:"llm"`

	// Output contains report output settings
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains normalization inputs
type PricingConfig struct {
	// FXRates maps currency codes to USD multipliers
	FXRates map[string]float64 `json:"fx_rates"`

	// SeatCount is the seat count for per-seat pricing, 0 when unknown
	SeatCount int `json:"seat_count"`
}

// SearchConfig contains search retrieval settings
type SearchConfig struct {
	// BaseURL is the search API base URL
	BaseURL string `json:"base_url"`

	// MaxResults caps results per query
	MaxResults int `json:"max_results"`

	// SearchDepth is the API search depth
	SearchDepth string `json:"search_depth"`

	// RequestsPerSecond rate-limits outgoing queries
	RequestsPerSecond float64 `json:"requests_per_second"`

	// TimeoutSeconds bounds a single request
	TimeoutSeconds int `json:"timeout_seconds"`
}

// LLMConfig contains narrative enrichment settings
type LLMConfig struct {
	// Enabled turns the optional enrichment call on
	Enabled bool `json:"enabled"`

	// Model is the chat model name
	Model string `json:"model"`
}

// OutputConfig contains report output settings
type OutputConfig struct {
	// DefaultFormat is the default report format (json, markdown)
	DefaultFormat string `json:"default_format"`

	// Directory is where reports are written
	Directory string `json:"directory"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			FXRates:   parsing.DefaultFXRates(),
			SeatCount: 0,
		},
		Analysis: verdict.DefaultConfig(),
		Search: SearchConfig{
			BaseURL:           "https://api.tavily.com",
			MaxResults:        10,
			SearchDepth:       "basic",
			RequestsPerSecond: 2,
			TimeoutSeconds:    30,
		},
		LLM: LLMConfig{
			Enabled: false,
			Model:   "command-r",
		},
		Output: OutputConfig{
			DefaultFormat: "json",
			Directory:     "reports",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads a .env file when present. API keys are read from the
// environment only, never from the config file.
func LoadEnv() {
	_ = godotenv.Load()
}

// SearchAPIKey returns the search API key from the environment.
func SearchAPIKey() string {
	return os.Getenv(EnvSearchAPIKey)
}

// LLMAPIKey returns the chat model API key from the environment.
func LLMAPIKey() string {
	return os.Getenv(EnvLLMAPIKey)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
