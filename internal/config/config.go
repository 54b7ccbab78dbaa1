package config

import (
	"net/http"
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr      string          `json:"addr"`
	Analysis  AnalysisConfig  `json:"analysis"`
	AI        AIConfig        `json:"ai"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// AnalysisConfig points at the service that owns /color and /analyze-color-season.
type AnalysisConfig struct {
	ColorBaseURL  string        `json:"color_base_url"`
	SeasonBaseURL string        `json:"season_base_url"` // defaults to ColorBaseURL
	Timeout       time.Duration `json:"timeout"`

	HTTPClient *http.Client `json:"-"`
}

type AIConfig struct {
	Provider string `json:"provider"` // "openai" or "gemini"
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
}

// Enabled reports whether the local season classifier should be mounted.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

type TelemetryConfig struct {
	OTLPEndpoint string `json:"otlp_endpoint"`
	ServiceName  string `json:"service_name"`
}

func (t TelemetryConfig) Enabled() bool {
	return t.OTLPEndpoint != ""
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnvOrDefault("ANALYSIS_TIMEOUT", "30s"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Addr: getEnvOrDefault("ADDR", ":8080"),
		Analysis: AnalysisConfig{
			ColorBaseURL:  getEnvOrDefault("COLOR_API_URL", "http://localhost:8000"),
			SeasonBaseURL: os.Getenv("SEASON_API_URL"),
			Timeout:       timeout,
		},
		AI: AIConfig{
			Provider: strings.ToLower(getEnvOrDefault("AI_PROVIDER", "openai")),
			APIKey:   os.Getenv("AI_API_KEY"),
			Model:    os.Getenv("AI_MODEL"),
			BaseURL:  os.Getenv("AI_BASE_URL"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  getEnvOrDefault("OTEL_SERVICE_NAME", "colorseason"),
		},
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
