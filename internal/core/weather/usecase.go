package weather

import (
	"context"
	"sync"
	"time"

	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
	"weatherpocket.app/pkg/validation"
)

type UseCase struct {
	provider     ports.ForecastProvider
	store        ports.LocalStore
	connectivity ports.ConnectivityChecker
	config       ports.ConfigProvider
	logger       ports.Logger
	metrics      ports.MetricsCollector

	mu      sync.Mutex
	current *Location

	now func() time.Time
}

type UseCaseDependencies struct {
	Provider     ports.ForecastProvider
	Store        ports.LocalStore
	Connectivity ports.ConnectivityChecker
	Config       ports.ConfigProvider
	Logger       ports.Logger
	Metrics      ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Store == nil {
		return nil, errors.NewValidationError("local store is required")
	}
	if deps.Connectivity == nil {
		return nil, errors.NewValidationError("connectivity checker is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		provider:     deps.Provider,
		store:        deps.Store,
		connectivity: deps.Connectivity,
		config:       deps.Config,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		now:          time.Now,
	}, nil
}

// FetchCities resolves a city name query to candidate locations.
// Geocoding failures are never masked by cache - there is no cached
// substitute for "which city did you mean".
func (uc *UseCase) FetchCities(ctx context.Context, query string) ([]Location, error) {
	trimmed, ok := validation.TrimAndValidate(query)
	if !ok {
		return nil, errors.NewValidationError("search query cannot be blank")
	}

	results, err := uc.provider.SearchCities(ctx, trimmed, uc.config.GetWeatherConfig().GeocodeLimit)
	if err != nil {
		uc.metrics.RecordGeocode(false)
		uc.logger.Error("Geocoding failed", ports.F("query", trimmed), ports.F("error", err))
		return nil, err
	}
	if len(results) == 0 {
		uc.metrics.RecordGeocode(false)
		return nil, errors.NewNotFoundError("no cities matched the query")
	}

	uc.metrics.RecordGeocode(true)

	// API order is preserved.
	locations := make([]Location, 0, len(results))
	for _, r := range results {
		locations = append(locations, Location{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
			Region:    r.Admin1,
		})
	}
	return locations, nil
}

// FetchWeather returns the snapshot for a location, preferring the network
// and falling back to the single cache slot on any network-class failure.
func (uc *UseCase) FetchWeather(ctx context.Context, location Location) (*Snapshot, error) {
	if err := location.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid location: " + err.Error())
	}

	if !uc.connectivity.IsOnline(ctx) {
		uc.logger.Debug("No connectivity, serving from cache", ports.F("city", location.Name))
		return uc.serveFromCache(ctx, errors.NewNoConnectivityError("no connectivity and no cached snapshot", nil))
	}

	unit := uc.UnitPreference(ctx)
	payload, err := uc.provider.Forecast(ctx, location.Latitude, location.Longitude, unit.String())
	if err != nil {
		uc.metrics.RecordFetchFailure()
		uc.logger.Warn("Forecast request failed, falling back to cache",
			ports.F("city", location.Name),
			ports.F("error", err))
		return uc.serveFromCache(ctx, err)
	}

	snapshot := uc.mapSnapshot(payload, location)

	if saveErr := uc.store.SaveSnapshot(ctx, uc.toSnapshotData(snapshot), uc.now().UnixMilli()); saveErr != nil {
		uc.logger.Warn("Failed to persist snapshot", ports.F("error", saveErr))
	}
	if histErr := uc.store.PushHistory(ctx, location.Name); histErr != nil {
		uc.logger.Warn("Failed to update search history", ports.F("error", histErr))
	}

	uc.setCurrent(location)
	uc.metrics.RecordFetch("network")
	uc.logger.Debug("Snapshot fetched",
		ports.F("city", location.Name),
		ports.F("unit", unit.String()))
	return snapshot, nil
}

// ChangeUnit persists the unit preference and re-fetches the currently
// displayed city so the API performs the conversion. Returns nil without
// error when no city is displayed yet.
func (uc *UseCase) ChangeUnit(ctx context.Context, unit UnitPreference) (*Snapshot, error) {
	if !unit.IsValid() {
		return nil, errors.NewValidationError("unit must be celsius or fahrenheit")
	}
	if err := uc.store.SaveUnitPreference(ctx, unit.String()); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	current := uc.current
	uc.mu.Unlock()
	if current == nil {
		return nil, nil
	}
	return uc.FetchWeather(ctx, *current)
}

// UnitPreference returns the persisted unit, defaulting to celsius.
func (uc *UseCase) UnitPreference(ctx context.Context) UnitPreference {
	raw, err := uc.store.UnitPreference(ctx)
	if err != nil {
		return UnitCelsius
	}
	if unit := UnitFromString(raw); unit.IsValid() {
		return unit
	}
	return UnitCelsius
}

// History returns the persisted search history, most-recent-first.
func (uc *UseCase) History(ctx context.Context) ([]string, error) {
	return uc.store.History(ctx)
}

func (uc *UseCase) serveFromCache(ctx context.Context, cause error) (*Snapshot, error) {
	cached, err := uc.store.LoadSnapshot(ctx)
	if err != nil {
		uc.metrics.RecordCacheMiss()
		return nil, cause
	}

	uc.metrics.RecordCacheHit()
	uc.metrics.RecordFetch("cache")

	snapshot := uc.fromSnapshotData(cached.Snapshot)
	snapshot.IsOffline = true
	uc.logger.Debug("Serving cached snapshot",
		ports.F("city", snapshot.CityName),
		ports.F("fetchedAt", cached.FetchedAtMillis))
	return snapshot, nil
}

func (uc *UseCase) setCurrent(location Location) {
	uc.mu.Lock()
	uc.current = &location
	uc.mu.Unlock()
}

func (uc *UseCase) mapSnapshot(payload *ports.ForecastPayload, location Location) *Snapshot {
	cfg := uc.config.GetWeatherConfig()
	conditionText, icon := ConditionForCode(payload.Current.WeatherCode)

	snapshot := &Snapshot{
		CityName:        location.Name,
		Country:         location.Country,
		Temperature:     payload.Current.Temperature2m,
		FeelsLike:       payload.Current.ApparentTemperature,
		Condition:       conditionText,
		Icon:            icon,
		Humidity:        payload.Current.RelativeHumidity2m,
		WindSpeed:       payload.Current.WindSpeed10m,
		LastUpdateLabel: FormatTimestampLabel(payload.Current.Time),
		Daily:           mapDaily(payload.Daily, cfg.ForecastDays),
		Hourly:          mapHourly(payload.Hourly, cfg.ForecastHours),
	}

	// Top-level min/max come from the first forecast day; an empty daily
	// block falls back to the current temperature for both.
	if len(snapshot.Daily) > 0 {
		snapshot.MinTemp = snapshot.Daily[0].MinTemp
		snapshot.MaxTemp = snapshot.Daily[0].MaxTemp
	} else {
		snapshot.MinTemp = payload.Current.Temperature2m
		snapshot.MaxTemp = payload.Current.Temperature2m
	}
	return snapshot
}

// mapDaily takes up to limit entries aligned by index across the daily
// arrays. Shorter arrays produce fewer days, never padding or an error.
func mapDaily(block ports.DailyBlock, limit int) []ForecastDay {
	n := len(block.Time)
	for _, l := range []int{len(block.Temperature2mMax), len(block.Temperature2mMin), len(block.WeatherCode), len(block.PrecipitationSum)} {
		if l < n {
			n = l
		}
	}
	if n > limit {
		n = limit
	}

	days := make([]ForecastDay, 0, n)
	for i := 0; i < n; i++ {
		text, icon := ConditionForCode(block.WeatherCode[i])
		days = append(days, ForecastDay{
			DateLabel:     FormatDateLabel(block.Time[i]),
			MaxTemp:       block.Temperature2mMax[i],
			MinTemp:       block.Temperature2mMin[i],
			Condition:     text,
			Icon:          icon,
			Precipitation: block.PrecipitationSum[i],
		})
	}
	return days
}

// mapHourly takes up to limit entries; an absent hourly block yields an
// empty list.
func mapHourly(block *ports.HourlyBlock, limit int) []ForecastHour {
	if block == nil {
		return []ForecastHour{}
	}

	n := len(block.Time)
	for _, l := range []int{len(block.Temperature2m), len(block.WeatherCode), len(block.RelativeHumidity2m)} {
		if l < n {
			n = l
		}
	}
	if n > limit {
		n = limit
	}

	hours := make([]ForecastHour, 0, n)
	for i := 0; i < n; i++ {
		text, icon := ConditionForCode(block.WeatherCode[i])
		hours = append(hours, ForecastHour{
			TimeLabel:   FormatHourLabel(block.Time[i]),
			Temperature: block.Temperature2m[i],
			Condition:   text,
			Icon:        icon,
			Humidity:    block.RelativeHumidity2m[i],
		})
	}
	return hours
}

func (uc *UseCase) toSnapshotData(s *Snapshot) ports.SnapshotData {
	daily := make([]ports.DailyData, 0, len(s.Daily))
	for _, d := range s.Daily {
		daily = append(daily, ports.DailyData{
			DateLabel:     d.DateLabel,
			MaxTemp:       d.MaxTemp,
			MinTemp:       d.MinTemp,
			Condition:     d.Condition,
			Icon:          d.Icon,
			Precipitation: d.Precipitation,
		})
	}
	hourly := make([]ports.HourlyData, 0, len(s.Hourly))
	for _, h := range s.Hourly {
		hourly = append(hourly, ports.HourlyData{
			TimeLabel:   h.TimeLabel,
			Temperature: h.Temperature,
			Condition:   h.Condition,
			Icon:        h.Icon,
			Humidity:    h.Humidity,
		})
	}
	return ports.SnapshotData{
		CityName:        s.CityName,
		Country:         s.Country,
		Temperature:     s.Temperature,
		FeelsLike:       s.FeelsLike,
		Condition:       s.Condition,
		Icon:            s.Icon,
		Humidity:        s.Humidity,
		WindSpeed:       s.WindSpeed,
		MinTemp:         s.MinTemp,
		MaxTemp:         s.MaxTemp,
		LastUpdateLabel: s.LastUpdateLabel,
		Daily:           daily,
		Hourly:          hourly,
	}
}

func (uc *UseCase) fromSnapshotData(data ports.SnapshotData) *Snapshot {
	daily := make([]ForecastDay, 0, len(data.Daily))
	for _, d := range data.Daily {
		daily = append(daily, ForecastDay{
			DateLabel:     d.DateLabel,
			MaxTemp:       d.MaxTemp,
			MinTemp:       d.MinTemp,
			Condition:     d.Condition,
			Icon:          d.Icon,
			Precipitation: d.Precipitation,
		})
	}
	hourly := make([]ForecastHour, 0, len(data.Hourly))
	for _, h := range data.Hourly {
		hourly = append(hourly, ForecastHour{
			TimeLabel:   h.TimeLabel,
			Temperature: h.Temperature,
			Condition:   h.Condition,
			Icon:        h.Icon,
			Humidity:    h.Humidity,
		})
	}
	return &Snapshot{
		CityName:        data.CityName,
		Country:         data.Country,
		Temperature:     data.Temperature,
		FeelsLike:       data.FeelsLike,
		Condition:       data.Condition,
		Icon:            data.Icon,
		Humidity:        data.Humidity,
		WindSpeed:       data.WindSpeed,
		MinTemp:         data.MinTemp,
		MaxTemp:         data.MaxTemp,
		LastUpdateLabel: data.LastUpdateLabel,
		Daily:           daily,
		Hourly:          hourly,
		IsOffline:       data.IsOffline,
	}
}

