package weather

import (
	"fmt"
	"strings"
)

// Location represents one geocoding match. It is immutable and lives only
// for the current search session.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	Region    string
}

// IsValid validates a location before it is used for a forecast request
func (l *Location) IsValid() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ForecastDay is one day of the daily forecast.
type ForecastDay struct {
	DateLabel     string
	MaxTemp       float64
	MinTemp       float64
	Condition     string
	Icon          string
	Precipitation float64
}

// ForecastHour is one row of the hourly forecast.
type ForecastHour struct {
	TimeLabel   string
	Temperature float64
	Condition   string
	Icon        string
	Humidity    float64
}

// Snapshot is the presentation-facing weather state for one city.
// IsOffline is set only on the copy served from cache, never persisted
// as true.
type Snapshot struct {
	CityName        string
	Country         string
	Temperature     float64
	FeelsLike       float64
	Condition       string
	Icon            string
	Humidity        float64
	WindSpeed       float64
	MinTemp         float64
	MaxTemp         float64
	LastUpdateLabel string
	Daily           []ForecastDay
	Hourly          []ForecastHour
	IsOffline       bool
}

// UnitPreference represents the global temperature unit setting
type UnitPreference int

const (
	UnitUnknown UnitPreference = iota
	UnitCelsius
	UnitFahrenheit
)

// String returns the string representation of the unit preference
func (u UnitPreference) String() string {
	switch u {
	case UnitCelsius:
		return "celsius"
	case UnitFahrenheit:
		return "fahrenheit"
	default:
		return "unknown"
	}
}

// IsValid checks if the unit preference value is valid
func (u UnitPreference) IsValid() bool {
	return u == UnitCelsius || u == UnitFahrenheit
}

// UnitFromString converts string to UnitPreference enum
func UnitFromString(s string) UnitPreference {
	switch s {
	case "celsius":
		return UnitCelsius
	case "fahrenheit":
		return UnitFahrenheit
	default:
		return UnitUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (u *UnitPreference) UnmarshalText(text []byte) error {
	*u = UnitFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (u UnitPreference) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
