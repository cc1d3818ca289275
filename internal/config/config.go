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
	SessionRetryCap    int
	SessionSpacing     int
	NewWordsPerSession int
	NewWordInterleave  int
	DefaultQueueLimit  int
	StatsWorkerCount   int
	StatsQueueSize     int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:vocabflash.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		SessionRetryCap:    envIntOr("SESSION_RETRY_CAP", 3),
		SessionSpacing:     envIntOr("SESSION_SPACING_FACTOR", 3),
		NewWordsPerSession: envIntOr("NEW_WORDS_PER_SESSION", 10),
		NewWordInterleave:  envIntOr("NEW_WORD_INTERLEAVE", 3),
		DefaultQueueLimit:  envIntOr("DEFAULT_QUEUE_LIMIT", 50),
		StatsWorkerCount:   envIntOr("STATS_WORKER_COUNT", 1),
		StatsQueueSize:     envIntOr("STATS_QUEUE_SIZE", 16),
	}
}

// Validate checks the configuration for values the server cannot run with.
// All problems are reported at once.
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
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.SessionRetryCap < 1 {
		problems = append(problems, "SESSION_RETRY_CAP must be at least 1")
	}
	if c.SessionSpacing < 1 {
		problems = append(problems, "SESSION_SPACING_FACTOR must be at least 1")
	}
	if c.NewWordsPerSession < 0 {
		problems = append(problems, "NEW_WORDS_PER_SESSION cannot be negative")
	}
	if c.NewWordInterleave < 1 {
		problems = append(problems, "NEW_WORD_INTERLEAVE must be at least 1")
	}
	if c.DefaultQueueLimit < 1 {
		problems = append(problems, "DEFAULT_QUEUE_LIMIT must be at least 1")
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
