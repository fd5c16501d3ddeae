package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	DefaultSessionSize int
	MaxSessionSize     int
	StatsWorkerCount   int
	StatsQueueSize     int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:vocadrill.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		DefaultSessionSize: envIntOr("DEFAULT_SESSION_SIZE", 10),
		MaxSessionSize:     envIntOr("MAX_SESSION_SIZE", 50),
		StatsWorkerCount:   envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:     envIntOr("STATS_QUEUE_SIZE", 64),
	}
}

// Validate checks the configuration for values that would break the server at
// runtime, collecting every problem into a single error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.LogLevel))
	}
	if c.DefaultSessionSize < 1 {
		problems = append(problems, "DEFAULT_SESSION_SIZE must be at least 1")
	}
	if c.MaxSessionSize < c.DefaultSessionSize {
		problems = append(problems, "MAX_SESSION_SIZE must be >= DEFAULT_SESSION_SIZE")
	}
	if c.StatsWorkerCount < 1 {
		problems = append(problems, "STATS_WORKER_COUNT must be at least 1")
	}
	if c.StatsQueueSize < 1 {
		problems = append(problems, "STATS_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
