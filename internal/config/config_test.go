package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "COLOR_API_URL", "SEASON_API_URL", "ANALYSIS_TIMEOUT", "AI_PROVIDER", "AI_API_KEY", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8000", cfg.Analysis.ColorBaseURL)
	assert.Empty(t, cfg.Analysis.SeasonBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.False(t, cfg.AI.Enabled())
	assert.False(t, cfg.Telemetry.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("COLOR_API_URL", "http://colors:9000")
	t.Setenv("SEASON_API_URL", "http://seasons:9001")
	t.Setenv("ANALYSIS_TIMEOUT", "5s")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://colors:9000", cfg.Analysis.ColorBaseURL)
	assert.Equal(t, "http://seasons:9001", cfg.Analysis.SeasonBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.True(t, cfg.AI.Enabled())
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("ANALYSIS_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
