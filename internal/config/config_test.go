package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luka/vocabflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		SessionRetryCap:    3,
		SessionSpacing:     3,
		NewWordsPerSession: 10,
		NewWordInterleave:  3,
		DefaultQueueLimit:  50,
		StatsWorkerCount:   1,
		StatsQueueSize:     16,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "VERBOSE"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_InvalidSessionSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "retry cap below one",
			mutate: func(c *config.Config) { c.SessionRetryCap = 0 },
			want:   "SESSION_RETRY_CAP must be at least 1",
		},
		{
			name:   "spacing factor below one",
			mutate: func(c *config.Config) { c.SessionSpacing = 0 },
			want:   "SESSION_SPACING_FACTOR must be at least 1",
		},
		{
			name:   "negative new words",
			mutate: func(c *config.Config) { c.NewWordsPerSession = -1 },
			want:   "NEW_WORDS_PER_SESSION cannot be negative",
		},
		{
			name:   "interleave below one",
			mutate: func(c *config.Config) { c.NewWordInterleave = 0 },
			want:   "NEW_WORD_INTERLEAVE must be at least 1",
		},
		{
			name:   "queue limit below one",
			mutate: func(c *config.Config) { c.DefaultQueueLimit = 0 },
			want:   "DEFAULT_QUEUE_LIMIT must be at least 1",
		},
		{
			name:   "worker count below one",
			mutate: func(c *config.Config) { c.StatsWorkerCount = 0 },
			want:   "STATS_WORKER_COUNT must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblemsAtOnce(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.SessionRetryCap = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "SESSION_RETRY_CAP must be at least 1")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 3, cfg.SessionRetryCap)
	assert.NoError(t, cfg.Validate())
}
