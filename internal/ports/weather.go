package ports

import "context"

// GeoResult is one geocoding match as returned by the geocoding API.
type GeoResult struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	Admin1    string
}

// CurrentBlock mirrors the `current` object of the forecast API response.
type CurrentBlock struct {
	Time                string
	Temperature2m       float64
	RelativeHumidity2m  float64
	ApparentTemperature float64
	Precipitation       float64
	WeatherCode         int
	WindSpeed10m        float64
}

// DailyBlock mirrors the `daily` arrays of the forecast API response.
// Arrays are aligned by index; consumers must use the shortest length.
type DailyBlock struct {
	Time             []string
	Temperature2mMax []float64
	Temperature2mMin []float64
	WeatherCode      []int
	PrecipitationSum []float64
}

// HourlyBlock mirrors the `hourly` arrays of the forecast API response.
type HourlyBlock struct {
	Time               []string
	Temperature2m      []float64
	WeatherCode        []int
	RelativeHumidity2m []float64
}

// ForecastPayload is the raw forecast API response. Hourly is optional.
type ForecastPayload struct {
	Current CurrentBlock
	Daily   DailyBlock
	Hourly  *HourlyBlock
}

// ForecastProvider defines the contract for the weather API client
type ForecastProvider interface {
	SearchCities(ctx context.Context, query string, limit int) ([]GeoResult, error)
	Forecast(ctx context.Context, latitude, longitude float64, unit string) (*ForecastPayload, error)
}

// DailyData is one mapped forecast day ready for presentation.
type DailyData struct {
	DateLabel     string
	MaxTemp       float64
	MinTemp       float64
	Condition     string
	Icon          string
	Precipitation float64
}

// HourlyData is one mapped forecast hour ready for presentation.
type HourlyData struct {
	TimeLabel   string
	Temperature float64
	Condition   string
	Icon        string
	Humidity    float64
}

// SnapshotData is the persisted form of a weather snapshot.
type SnapshotData struct {
	CityName        string       `json:"city_name"`
	Country         string       `json:"country"`
	Temperature     float64      `json:"temperature"`
	FeelsLike       float64      `json:"feels_like"`
	Condition       string       `json:"condition"`
	Icon            string       `json:"icon"`
	Humidity        float64      `json:"humidity"`
	WindSpeed       float64      `json:"wind_speed"`
	MinTemp         float64      `json:"min_temp"`
	MaxTemp         float64      `json:"max_temp"`
	LastUpdateLabel string       `json:"last_update_label"`
	Daily           []DailyData  `json:"daily"`
	Hourly          []HourlyData `json:"hourly"`
	IsOffline       bool         `json:"is_offline"`
}

// CachedSnapshot is the single cache slot: one snapshot plus its fetch time.
type CachedSnapshot struct {
	Snapshot        SnapshotData
	FetchedAtMillis int64
}

// LocalStore defines the contract for the persisted on-device state.
// Writes are full-record overwrites; the store serializes them internally.
type LocalStore interface {
	// LoadSnapshot returns the cached snapshot or a NotFound error when the
	// slot is empty.
	LoadSnapshot(ctx context.Context) (*CachedSnapshot, error)
	// SaveSnapshot overwrites the single cache slot.
	SaveSnapshot(ctx context.Context, snapshot SnapshotData, fetchedAtMillis int64) error

	UnitPreference(ctx context.Context) (string, error)
	SaveUnitPreference(ctx context.Context, unit string) error

	// History returns city names most-recent-first.
	History(ctx context.Context) ([]string, error)
	// PushHistory moves the name to the front, deduplicating and capping.
	PushHistory(ctx context.Context, cityName string) error

	// SessionID returns the persisted anonymous identity, or NotFound.
	SessionID(ctx context.Context) (string, error)
	SaveSessionID(ctx context.Context, id string) error
}

// ConnectivityChecker reports whether the network path is usable at all.
type ConnectivityChecker interface {
	IsOnline(ctx context.Context) bool
}
