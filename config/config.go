package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ngenohkevin/nanostats/internal/process"
	"github.com/ngenohkevin/nanostats/internal/system"
)

// DefaultTitle is shown in front of the usage percentage
const DefaultTitle = "MEM"

// Config holds all configuration for nanostats
type Config struct {
	// Status item
	Title string

	// Sampling
	Interval       time.Duration
	SampleTimeout  time.Duration
	TopLimit       int
	MinResident    uint64
	InactiveWeight float64
	LazyProcesses  bool
	CacheTTL       time.Duration

	// Logging
	LogLevel   string
	LogFile    string
	LogJournal bool

	EnvFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Determine .env file path
	envFile := getEnvFile()

	// Load .env file if it exists
	_ = godotenv.Load(envFile)

	cfg := &Config{
		Title:          getEnv("STATUS_TITLE", DefaultTitle),
		Interval:       time.Duration(getEnvInt("SAMPLE_INTERVAL_SECONDS", 2)) * time.Second,
		SampleTimeout:  time.Duration(getEnvInt("SAMPLE_TIMEOUT_SECONDS", 5)) * time.Second,
		TopLimit:       getEnvInt("TOP_PROCESS_LIMIT", 5),
		MinResident:    getEnvUint64("MIN_PROCESS_RSS_BYTES", process.DefaultMinResidentBytes),
		InactiveWeight: getEnvFloat("INACTIVE_WEIGHT", system.DefaultInactiveWeight),
		LazyProcesses:  getEnvBool("LAZY_PROCESSES", true),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 2)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogJournal:     getEnvBool("LOG_JOURNAL", false),
		EnvFile:        envFile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that sampling settings are usable
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("SAMPLE_INTERVAL_SECONDS must be positive")
	}
	if c.SampleTimeout < 0 {
		return fmt.Errorf("SAMPLE_TIMEOUT_SECONDS must not be negative")
	}
	if c.TopLimit <= 0 {
		return fmt.Errorf("TOP_PROCESS_LIMIT must be positive")
	}
	if c.InactiveWeight < 0 || c.InactiveWeight > 1 {
		return fmt.Errorf("INACTIVE_WEIGHT must be between 0 and 1, got %v", c.InactiveWeight)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must not be negative")
	}
	return nil
}

// getEnvFile returns the path to the .env file
func getEnvFile() string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return envFile
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	// Fall back to the directory holding the executable
	exe, err := os.Executable()
	if err == nil {
		envPath := filepath.Join(filepath.Dir(exe), ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	return ".env"
}

// LoadWithDefaults loads config with defaults for testing
func LoadWithDefaults() *Config {
	return &Config{
		Title:          DefaultTitle,
		Interval:       2 * time.Second,
		SampleTimeout:  5 * time.Second,
		TopLimit:       5,
		MinResident:    process.DefaultMinResidentBytes,
		InactiveWeight: system.DefaultInactiveWeight,
		LazyProcesses:  true,
		CacheTTL:       2 * time.Second,
		LogLevel:       "info",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
