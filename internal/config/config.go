package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// BackendURL is the base address of the insurance chatbot service.
	BackendURL string `json:"backend_url"`

	// TokenAudience is the audience claim for identity tokens. Empty means
	// the backend URL itself, which is what the service expects.
	TokenAudience string `json:"token_audience"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	Debug     bool   `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	if cfg.TokenAudience == "" {
		cfg.TokenAudience = cfg.BackendURL
	}

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("TOKEN_AUDIENCE"); val != "" {
		c.TokenAudience = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Debug = debug
		}
	}
}

// Validate checks that the configuration is usable before any call is made.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is not set")
	}
	parsed, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL, got %q", c.BackendURL)
	}
	return nil
}
