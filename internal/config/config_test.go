package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://chatbot.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DEBUG", "true")

	cfg := DefaultConfig()

	assert.Equal(t, "https://chatbot.example.com", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Debug)
}

func TestDefaultConfigAudienceFallsBackToBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://chatbot.example.com")
	t.Setenv("TOKEN_AUDIENCE", "")

	cfg := DefaultConfig()
	assert.Equal(t, cfg.BackendURL, cfg.TokenAudience)

	t.Setenv("TOKEN_AUDIENCE", "https://other-audience.example.com")
	cfg = DefaultConfig()
	assert.Equal(t, "https://other-audience.example.com", cfg.TokenAudience)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.BackendURL = "not a url"
	require.Error(t, cfg.Validate())

	cfg.BackendURL = "/relative/path"
	require.Error(t, cfg.Validate())

	cfg.BackendURL = "https://chatbot.example.com"
	require.NoError(t, cfg.Validate())
}
