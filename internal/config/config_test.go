package config_test

import (
	"testing"

	"github.com/lgomes/vocadrill/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		DefaultSessionSize: 10,
		MaxSessionSize:     50,
		StatsWorkerCount:   2,
		StatsQueueSize:     64,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "INVALID"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_SessionSizes(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultSessionSize = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_SESSION_SIZE")

	cfg = validConfig()
	cfg.MaxSessionSize = 5
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_SESSION_SIZE")
}

func TestValidate_WorkerSettings(t *testing.T) {
	cfg := validConfig()
	cfg.StatsWorkerCount = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATS_WORKER_COUNT")

	cfg = validConfig()
	cfg.StatsQueueSize = -1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATS_QUEUE_SIZE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "DEFAULT_SESSION_SIZE")
	assert.Contains(t, errStr, "STATS_WORKER_COUNT")
	assert.Contains(t, errStr, "STATS_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("DEFAULT_SESSION_SIZE", "15")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 15, cfg.DefaultSessionSize)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("DEFAULT_SESSION_SIZE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 10, cfg.DefaultSessionSize)
}
