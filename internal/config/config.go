// ABOUTME: Configuration loader for the fitcoach CLI
// ABOUTME: Loads settings from a .env file and environment variables

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend used when nothing else is configured.
const DefaultAPIURL = "https://fitness-app-1-2awu.onrender.com/api"

type Config struct {
	APIURL         string // backend base URL
	ConfigDir      string // where tokens and the debug log live
	RequestTimeout int    // seconds, applied to every outbound request
}

// Load reads configuration from .env (if present) and the environment.
func Load(defaultConfigDir string) (*Config, error) {
	// A missing .env is the normal case, not an error
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         ensureScheme(getEnv("FITCOACH_API_URL", DefaultAPIURL)),
		ConfigDir:      getEnv("FITCOACH_CONFIG_DIR", defaultConfigDir),
		RequestTimeout: getEnvInt("FITCOACH_REQUEST_TIMEOUT", 10),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("FITCOACH_API_URL is required")
	}
	if cfg.RequestTimeout < 1 || cfg.RequestTimeout > 300 {
		return nil, fmt.Errorf("FITCOACH_REQUEST_TIMEOUT must be between 1 and 300, got %d", cfg.RequestTimeout)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
