package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Default values applied when the corresponding environment variable is unset.
const (
	// DefaultTimeout is the default per-operation timeout in milliseconds.
	DefaultTimeout = 30000.0

	// DefaultMaxRetries is the default number of transfer attempts.
	DefaultMaxRetries = 3
)

// Config holds the resolved settings for one transfer session. It is built
// once from the environment and treated as immutable afterwards; the portal
// and upload packages never read environment state themselves.
type Config struct {
	// URL is the portal address the browser navigates to.
	URL string

	// Username and Password are the portal login credentials.
	Username string
	Password string

	// RecipientEmail is filled into the portal's recipient field when the
	// portal variant presents one.
	RecipientEmail string

	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// Timeout is the default timeout for page operations, in milliseconds.
	Timeout float64

	// MaxRetries bounds how many times a failed attempt is retried.
	MaxRetries int

	// ScreenshotOnError enables a failure screenshot for post-mortem.
	ScreenshotOnError bool
}

// Load reads configuration from a .env file (when present) and the process
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using environment variables only")
	}

	cfg := &Config{
		URL:               getEnv("SHUTTLE_URL", ""),
		Username:          getEnv("SHUTTLE_USERNAME", ""),
		Password:          getEnv("SHUTTLE_PASSWORD", ""),
		RecipientEmail:    getEnv("SHUTTLE_RECIPIENT_EMAIL", ""),
		Headless:          getEnvBool("SHUTTLE_HEADLESS", true),
		Timeout:           getEnvFloat("SHUTTLE_TIMEOUT_MS", DefaultTimeout),
		MaxRetries:        getEnvInt("SHUTTLE_MAX_RETRIES", DefaultMaxRetries),
		ScreenshotOnError: getEnvBool("SHUTTLE_SCREENSHOT_ON_ERROR", true),
	}

	return cfg, nil
}

// Validate checks that the settings required to reach the portal are present.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("SHUTTLE_URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("SHUTTLE_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("SHUTTLE_PASSWORD is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("invalid boolean in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn("invalid number in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}
