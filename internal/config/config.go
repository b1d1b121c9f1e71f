package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

const (
	maxRedisDB        = 15
	maxGeocodeLimit   = 100
	maxForecastDays   = 16
	maxForecastHours  = 168
	maxHistoryEntries = 50
	maxTimeoutSeconds = 120
)

// Config represents the application configuration structure
type Config struct {
	Weather  WeatherConfig  `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Sync     SyncConfig     `split_words:"true"`
}

// WeatherConfig holds the weather API and reconciler settings
type WeatherConfig struct {
	GeocodingBaseURL string `envconfig:"GEOCODING_API_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
	ForecastBaseURL  string `envconfig:"FORECAST_API_BASE_URL" default:"https://api.open-meteo.com/v1"`
	TimeoutSeconds   int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"30"`
	GeocodeLimit     int    `envconfig:"WEATHER_GEOCODE_LIMIT" default:"5"`
	ForecastDays     int    `envconfig:"WEATHER_FORECAST_DAYS" default:"3"`
	ForecastHours    int    `envconfig:"WEATHER_FORECAST_HOURS" default:"24"`
	HistoryLimit     int    `envconfig:"WEATHER_HISTORY_LIMIT" default:"10"`
}

// DatabaseConfig holds the on-device store settings
type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"weatherpocket.db"`
}

// SyncConfig holds the favorites sync settings. The client must work with
// sync disabled (offline-only installs).
type SyncConfig struct {
	Enabled bool        `envconfig:"SYNC_ENABLED" default:"false"`
	Redis   RedisConfig `split_words:"true"`
}

// RedisConfig holds the favorites backend connection settings
type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	// missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.NewConfigurationError("process environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration bounds
func (c *Config) Validate() error {
	if c.Weather.GeocodingBaseURL == "" {
		return errors.NewConfigurationError("geocoding base URL cannot be empty", nil)
	}
	if c.Weather.ForecastBaseURL == "" {
		return errors.NewConfigurationError("forecast base URL cannot be empty", nil)
	}
	if c.Weather.TimeoutSeconds <= 0 || c.Weather.TimeoutSeconds > maxTimeoutSeconds {
		return errors.NewConfigurationError(fmt.Sprintf("weather timeout must be 1-%d seconds", maxTimeoutSeconds), nil)
	}
	if c.Weather.GeocodeLimit <= 0 || c.Weather.GeocodeLimit > maxGeocodeLimit {
		return errors.NewConfigurationError(fmt.Sprintf("geocode limit must be 1-%d", maxGeocodeLimit), nil)
	}
	if c.Weather.ForecastDays <= 0 || c.Weather.ForecastDays > maxForecastDays {
		return errors.NewConfigurationError(fmt.Sprintf("forecast days must be 1-%d", maxForecastDays), nil)
	}
	if c.Weather.ForecastHours <= 0 || c.Weather.ForecastHours > maxForecastHours {
		return errors.NewConfigurationError(fmt.Sprintf("forecast hours must be 1-%d", maxForecastHours), nil)
	}
	if c.Weather.HistoryLimit <= 0 || c.Weather.HistoryLimit > maxHistoryEntries {
		return errors.NewConfigurationError(fmt.Sprintf("history limit must be 1-%d", maxHistoryEntries), nil)
	}
	if c.Database.Path == "" {
		return errors.NewConfigurationError("database path cannot be empty", nil)
	}
	if c.Sync.Enabled {
		if c.Sync.Redis.Addr == "" {
			return errors.NewConfigurationError("redis address cannot be empty when sync is enabled", nil)
		}
		if c.Sync.Redis.DB < 0 || c.Sync.Redis.DB > maxRedisDB {
			return errors.NewConfigurationError(fmt.Sprintf("redis DB must be 0-%d", maxRedisDB), nil)
		}
	}
	return nil
}

// GetWeatherConfig implements the ConfigProvider port
func (c *Config) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		GeocodeLimit:  c.Weather.GeocodeLimit,
		ForecastDays:  c.Weather.ForecastDays,
		ForecastHours: c.Weather.ForecastHours,
		HistoryLimit:  c.Weather.HistoryLimit,
	}
}

// GetSyncConfig implements the ConfigProvider port
func (c *Config) GetSyncConfig() ports.SyncConfig {
	return ports.SyncConfig{Enabled: c.Sync.Enabled}
}
