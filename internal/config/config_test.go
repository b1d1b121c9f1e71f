package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherpocket.app/pkg/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.Weather.GeocodingBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Weather.ForecastBaseURL)
	assert.Equal(t, 30, cfg.Weather.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Weather.GeocodeLimit)
	assert.Equal(t, 3, cfg.Weather.ForecastDays)
	assert.Equal(t, 24, cfg.Weather.ForecastHours)
	assert.Equal(t, 10, cfg.Weather.HistoryLimit)
	assert.Equal(t, "weatherpocket.db", cfg.Database.Path)
	assert.False(t, cfg.Sync.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("WEATHER_FORECAST_DAYS", "7")
	t.Setenv("SYNC_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Weather.ForecastDays)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, "redis.internal:6379", cfg.Sync.Redis.Addr)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"EmptyGeocodingURL", func(c *Config) { c.Weather.GeocodingBaseURL = "" }},
		{"EmptyForecastURL", func(c *Config) { c.Weather.ForecastBaseURL = "" }},
		{"ZeroTimeout", func(c *Config) { c.Weather.TimeoutSeconds = 0 }},
		{"TimeoutTooLarge", func(c *Config) { c.Weather.TimeoutSeconds = 121 }},
		{"ZeroGeocodeLimit", func(c *Config) { c.Weather.GeocodeLimit = 0 }},
		{"ZeroForecastDays", func(c *Config) { c.Weather.ForecastDays = 0 }},
		{"TooManyForecastDays", func(c *Config) { c.Weather.ForecastDays = 17 }},
		{"ZeroHistoryLimit", func(c *Config) { c.Weather.HistoryLimit = 0 }},
		{"EmptyDatabasePath", func(c *Config) { c.Database.Path = "" }},
		{"SyncEnabledWithoutRedisAddr", func(c *Config) {
			c.Sync.Enabled = true
			c.Sync.Redis.Addr = ""
		}},
		{"RedisDBOutOfRange", func(c *Config) {
			c.Sync.Enabled = true
			c.Sync.Redis.DB = 16
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeConfiguration, appErr.Type)
		})
	}
}

func TestConfig_PortViews(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	weather := cfg.GetWeatherConfig()
	assert.Equal(t, 5, weather.GeocodeLimit)
	assert.Equal(t, 3, weather.ForecastDays)
	assert.Equal(t, 24, weather.ForecastHours)
	assert.Equal(t, 10, weather.HistoryLimit)

	assert.False(t, cfg.GetSyncConfig().Enabled)
}
