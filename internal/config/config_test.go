package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-heatmap/internal/temperature/sources"
)

var configKeys = []string{
	"DATASET_URL", "DATASET_FILE", "HTTP_TIMEOUT", "REFRESH_INTERVAL",
	"STORE_MAX_HISTORY", "STORE_MAX_AGE", "PORT", "LOG_LEVEL", "LOG_FORMAT",
	"SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every config variable; Load treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, sources.DefaultDatasetURL, cfg.DatasetURL)
	assert.Empty(t, cfg.DatasetFile)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 5, cfg.StoreMaxHistory)
	assert.Equal(t, time.Duration(0), cfg.StoreMaxAge)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_URL", "http://localhost:9000/data.json")
	t.Setenv("DATASET_FILE", "/tmp/global-temperature.json")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("REFRESH_INTERVAL", "0")
	t.Setenv("STORE_MAX_HISTORY", "1")
	t.Setenv("STORE_MAX_AGE", "72h")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/data.json", cfg.DatasetURL)
	assert.Equal(t, "/tmp/global-temperature.json", cfg.DatasetFile)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, 1, cfg.StoreMaxHistory)
	assert.Equal(t, 72*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidDurations(t *testing.T) {
	clearEnv(t)
	for _, key := range []string{"HTTP_TIMEOUT", "REFRESH_INTERVAL", "STORE_MAX_AGE", "SHUTDOWN_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "not-a-duration")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_NegativeRefreshInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFRESH_INTERVAL", "-1m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_ZeroHTTPTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_BadStoreHistoryFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_MAX_HISTORY", "many")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.StoreMaxHistory)
}
