package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/local-forecast/internal/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Forecast.URL)
	assert.Equal(t, "auto", cfg.Forecast.Timezone)
	assert.Equal(t, uint64(5), cfg.Retry.Count)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.Backoff)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Empty(t, cfg.Warmer.Spec)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("RETRY_COUNT", "2")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddress())
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, uint64(2), cfg.Retry.Count)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestNewConfig_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	_, err := config.NewConfig()
	assert.Error(t, err)
}
