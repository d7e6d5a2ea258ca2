// Package config loads application configuration from environment
// variables (and an optional .env file), following the source's loading
// order: .env first, then process environment, with typed defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DataDir  string // base directory for the SQLite database file
	Port     int    // HTTP server port
	LogLevel string // debug, info, warn, error
	DevMode  bool

	AIProviderURL string // base URL of the AI collaborator service
	AIAPIKey      string
	AIAttempts    int
	AICacheTTL    time.Duration

	RescanInterval   time.Duration // how often the stale-contract rescan job runs
	RescanStaleAfter time.Duration // age at which a risk score is considered stale

	ArchiveEnabled bool
	ArchiveBucket  string
	ArchivePrefix  string
}

// Load reads configuration from environment variables. dataDirOverride, if
// non-empty, takes priority over the CLEARDEAL_DATA_DIR environment
// variable (mirrors a CLI --data-dir flag).
func Load(dataDirOverride ...string) (*Config, error) {
	_ = godotenv.Load()

	var dataDir string
	if len(dataDirOverride) > 0 && dataDirOverride[0] != "" {
		dataDir = dataDirOverride[0]
	} else {
		dataDir = getEnv("CLEARDEAL_DATA_DIR", "")
		if dataDir == "" {
			dataDir = "./data"
		}
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),

		AIProviderURL: getEnv("AI_PROVIDER_URL", "http://localhost:9100"),
		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIAttempts:    getEnvAsInt("AI_ATTEMPTS", 3),
		AICacheTTL:    getEnvAsDuration("AI_CACHE_TTL", time.Hour),

		RescanInterval:   getEnvAsDuration("RESCAN_INTERVAL", 24*time.Hour),
		RescanStaleAfter: getEnvAsDuration("RESCAN_STALE_AFTER", 7*24*time.Hour),

		ArchiveEnabled: getEnvAsBool("ARCHIVE_ENABLED", false),
		ArchiveBucket:  getEnv("ARCHIVE_BUCKET", ""),
		ArchivePrefix:  getEnv("ARCHIVE_PREFIX", "risk-history"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required configuration. Archive export is optional but
// requires a bucket name when enabled.
func (c *Config) Validate() error {
	if c.ArchiveEnabled && c.ArchiveBucket == "" {
		return fmt.Errorf("ARCHIVE_BUCKET is required when ARCHIVE_ENABLED is true")
	}
	return nil
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
