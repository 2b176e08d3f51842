package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Gemini   GeminiConfig
	Tracking TrackingConfig
	Stats    StatsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
	// PublicURL is prepended to click-through links handed out in comparison results.
	PublicURL string
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// Namespace scopes every stored record key, so several deployments (or tests)
	// can share one database file without seeing each other's data.
	Namespace string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// GeminiConfig holds settings for the comparison model call.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	// ExtraPlatforms are added to the built-in list of platforms the model is asked to compare.
	ExtraPlatforms []string
}

// TrackingConfig holds settings for click-through tokens.
type TrackingConfig struct {
	Key string
	TTL time.Duration
}

// StatsConfig holds settings for click statistics and the earnings estimate.
type StatsConfig struct {
	DigestSchedule string
	CPARate        float64
	ConversionRate float64
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var errs []string
	parse := func(key string, err error) {
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}

	temperature, err := getEnvFloat("GEMINI_TEMPERATURE", 0.1)
	parse("GEMINI_TEMPERATURE", err)
	timeout, err := getEnvDuration("GEMINI_TIMEOUT", 30*time.Second)
	parse("GEMINI_TIMEOUT", err)
	maxRetries, err := getEnvInt("GEMINI_MAX_RETRIES", 1)
	parse("GEMINI_MAX_RETRIES", err)
	retryDelay, err := getEnvDuration("GEMINI_RETRY_DELAY", 500*time.Millisecond)
	parse("GEMINI_RETRY_DELAY", err)
	trackingTTL, err := getEnvDuration("TRACKING_TTL", 24*time.Hour)
	parse("TRACKING_TTL", err)
	cpaRate, err := getEnvFloat("STATS_CPA_RATE", 20)
	parse("STATS_CPA_RATE", err)
	conversionRate, err := getEnvFloat("STATS_CONVERSION_RATE", 0.15)
	parse("STATS_CONVERSION_RATE", err)

	if maxRetries < 0 {
		errs = append(errs, "GEMINI_MAX_RETRIES: must not be negative")
	}
	if timeout <= 0 {
		errs = append(errs, "GEMINI_TIMEOUT: must be positive")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	config := &Config{
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "5001"),
			Host:      getEnv("SERVER_HOST", "localhost"),
			PublicURL: strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
		},
		Database: DatabaseConfig{
			Path:      getEnv("DB_PATH", "./data/remitwise.db"),
			Namespace: getEnv("DB_NAMESPACE", "remitwise"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:    float32(temperature),
			Timeout:        timeout,
			MaxRetries:     maxRetries,
			RetryDelay:     retryDelay,
			ExtraPlatforms: getEnvList("GEMINI_EXTRA_PLATFORMS", nil),
		},
		Tracking: TrackingConfig{
			Key: getEnv("TRACKING_KEY", ""),
			TTL: trackingTTL,
		},
		Stats: StatsConfig{
			DigestSchedule: getEnvAllowEmpty("STATS_DIGEST_SCHEDULE", "@daily"),
			CPARate:        cpaRate,
			ConversionRate: conversionRate,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty returns the default only when the variable is unset,
// so an explicitly empty value can switch a feature off.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}
