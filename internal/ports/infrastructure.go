package ports

// WeatherConfig represents weather reconciler configuration
type WeatherConfig struct {
	GeocodeLimit  int
	ForecastDays  int
	ForecastHours int
	HistoryLimit  int
}

// SyncConfig represents favorites sync configuration
type SyncConfig struct {
	Enabled bool
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetSyncConfig() SyncConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit()
	RecordCacheMiss()
	// RecordFetch counts a served snapshot by source ("network" or "cache").
	RecordFetch(source string)
	RecordFetchFailure()
	RecordGeocode(success bool)
	RecordFavoritesOp(op string, success bool)
}
