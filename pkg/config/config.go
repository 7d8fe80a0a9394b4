package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OpenAI   OpenAIConfig
	Triage   TriageConfig
	Hospital HospitalConfig
	Voice    VoiceConfig
	Image    ImageConfig
	Logging  LoggingConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Enabled bool
	Timeout time.Duration
}

// TriageConfig holds emergency detection thresholds. The severity thresholds
// are strictly descending; Load rejects any other ordering.
type TriageConfig struct {
	ConfidenceThreshold float64
	CriticalThreshold   float64
	HighThreshold       float64
	ModerateThreshold   float64
}

// HospitalConfig holds hospital search configuration
type HospitalConfig struct {
	DefaultRadiusKm float64
	MaxResults      int
}

// VoiceConfig holds voice input configuration
type VoiceConfig struct {
	MaxAudioDuration time.Duration
	SupportedFormats []string
}

// ImageConfig holds image input configuration
type ImageConfig struct {
	MaxImageBytes    int
	SupportedFormats []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Enabled: getEnvAsBool("AI_ENABLED", true),
			Timeout: time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Triage: TriageConfig{
			ConfidenceThreshold: getEnvAsFloat("EMERGENCY_CONFIDENCE_THRESHOLD", 0.7),
			CriticalThreshold:   getEnvAsFloat("CRITICAL_SEVERITY_THRESHOLD", 0.8),
			HighThreshold:       getEnvAsFloat("HIGH_SEVERITY_THRESHOLD", 0.6),
			ModerateThreshold:   getEnvAsFloat("MODERATE_SEVERITY_THRESHOLD", 0.4),
		},
		Hospital: HospitalConfig{
			DefaultRadiusKm: getEnvAsFloat("DEFAULT_HOSPITAL_RADIUS", 10),
			MaxResults:      getEnvAsInt("MAX_HOSPITAL_RESULTS", 10),
		},
		Voice: VoiceConfig{
			MaxAudioDuration: time.Duration(getEnvAsInt("MAX_AUDIO_DURATION", 60)) * time.Second,
			SupportedFormats: getEnvAsSlice("SUPPORTED_AUDIO_FORMATS", []string{"wav", "mp3", "m4a", "flac"}),
		},
		Image: ImageConfig{
			MaxImageBytes:    getEnvAsInt("MAX_IMAGE_SIZE", 5242880),
			SupportedFormats: getEnvAsSlice("SUPPORTED_IMAGE_FORMATS", []string{"jpg", "jpeg", "png", "webp"}),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "lifeline-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Triage.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *TriageConfig) validate() error {
	if !(c.CriticalThreshold > c.HighThreshold && c.HighThreshold > c.ModerateThreshold) {
		return fmt.Errorf(
			"severity thresholds must be strictly descending: critical=%.2f high=%.2f moderate=%.2f",
			c.CriticalThreshold, c.HighThreshold, c.ModerateThreshold,
		)
	}
	return nil
}

// Addr returns the server listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
