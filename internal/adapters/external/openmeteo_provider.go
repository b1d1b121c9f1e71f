package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

// Fixed field lists requested from the forecast endpoint. The mapping in
// the weather core depends on exactly these fields being present.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
	hourlyFields  = "temperature_2m,weather_code,relative_humidity_2m"
)

// HTTPClient abstracts the HTTP transport for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenMeteoProviderAdapter implements the ForecastProvider port against the
// Open-Meteo geocoding and forecast APIs.
type OpenMeteoProviderAdapter struct {
	geocodingBaseURL string
	forecastBaseURL  string
	client           HTTPClient
	logger           ports.Logger
}

// OpenMeteoProviderParams holds parameters for creating the provider
type OpenMeteoProviderParams struct {
	GeocodingBaseURL string
	ForecastBaseURL  string
	Timeout          time.Duration
	Client           HTTPClient
	Logger           ports.Logger
}

// NewOpenMeteoProviderAdapter creates a new Open-Meteo provider adapter
func NewOpenMeteoProviderAdapter(params OpenMeteoProviderParams) ports.ForecastProvider {
	geocodingBaseURL := params.GeocodingBaseURL
	if geocodingBaseURL == "" {
		geocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
	}
	forecastBaseURL := params.ForecastBaseURL
	if forecastBaseURL == "" {
		forecastBaseURL = "https://api.open-meteo.com/v1"
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &OpenMeteoProviderAdapter{
		geocodingBaseURL: geocodingBaseURL,
		forecastBaseURL:  forecastBaseURL,
		client:           client,
		logger:           params.Logger,
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Time                string  `json:"time"`
		Temperature2m       float64 `json:"temperature_2m"`
		RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		WeatherCode      []int     `json:"weather_code"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
	Hourly *struct {
		Time               []string  `json:"time"`
		Temperature2m      []float64 `json:"temperature_2m"`
		WeatherCode        []int     `json:"weather_code"`
		RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

// SearchCities queries the geocoding endpoint. A null/empty result set is
// returned as an empty slice; the caller decides whether that is an error.
func (p *OpenMeteoProviderAdapter) SearchCities(ctx context.Context, query string, limit int) ([]ports.GeoResult, error) {
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("language", "en")
	params.Set("format", "json")

	var payload geocodingResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s/search?%s", p.geocodingBaseURL, params.Encode()), "geocoding", &payload); err != nil {
		return nil, err
	}

	results := make([]ports.GeoResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, ports.GeoResult{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
			Admin1:    r.Admin1,
		})
	}
	return results, nil
}

// Forecast queries the forecast endpoint for the given coordinates. The
// API performs all unit conversion.
func (p *OpenMeteoProviderAdapter) Forecast(ctx context.Context, latitude, longitude float64, unit string) (*ports.ForecastPayload, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("daily", dailyFields)
	params.Set("hourly", hourlyFields)
	params.Set("timezone", "auto")
	params.Set("temperature_unit", unit)
	params.Set("wind_speed_unit", "kmh")

	var payload forecastResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s/forecast?%s", p.forecastBaseURL, params.Encode()), "forecast", &payload); err != nil {
		return nil, err
	}

	result := &ports.ForecastPayload{
		Current: ports.CurrentBlock{
			Time:                payload.Current.Time,
			Temperature2m:       payload.Current.Temperature2m,
			RelativeHumidity2m:  payload.Current.RelativeHumidity2m,
			ApparentTemperature: payload.Current.ApparentTemperature,
			Precipitation:       payload.Current.Precipitation,
			WeatherCode:         payload.Current.WeatherCode,
			WindSpeed10m:        payload.Current.WindSpeed10m,
		},
		Daily: ports.DailyBlock{
			Time:             payload.Daily.Time,
			Temperature2mMax: payload.Daily.Temperature2mMax,
			Temperature2mMin: payload.Daily.Temperature2mMin,
			WeatherCode:      payload.Daily.WeatherCode,
			PrecipitationSum: payload.Daily.PrecipitationSum,
		},
	}
	if payload.Hourly != nil {
		result.Hourly = &ports.HourlyBlock{
			Time:               payload.Hourly.Time,
			Temperature2m:      payload.Hourly.Temperature2m,
			WeatherCode:        payload.Hourly.WeatherCode,
			RelativeHumidity2m: payload.Hourly.RelativeHumidity2m,
		}
	}
	return result, nil
}

func (p *OpenMeteoProviderAdapter) getJSON(ctx context.Context, requestURL, operation string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewValidationError("build " + operation + " request: " + err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.transportError(operation, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close response body",
				ports.F("operation", operation),
				ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.NewServerError(fmt.Sprintf("%s returned status %d", operation, resp.StatusCode))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.NewClientError(fmt.Sprintf("%s returned status %d", operation, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewParseError("decode "+operation+" response", err)
	}
	return nil
}

func (p *OpenMeteoProviderAdapter) transportError(operation string, err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.NewTimeoutError(operation+" request timed out", err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation+" request timed out", err)
	}
	return errors.NewNoConnectivityError(operation+" request failed", err)
}
