package infrastructure

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetricsCollector implements the MetricsCollector port.
type PrometheusMetricsCollector struct {
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	fetches        *prometheus.CounterVec
	fetchFailures  prometheus.Counter
	geocodeLookups *prometheus.CounterVec
	favoritesOps   *prometheus.CounterVec
}

// NewPrometheusMetricsCollector registers the client metrics with reg;
// passing nil uses the default registerer.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetricsCollector{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "weather_cache_hits_total",
			Help: "The total number of snapshots served from the offline cache",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "weather_cache_misses_total",
			Help: "The total number of offline requests with an empty cache",
		}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_fetches_total",
			Help: "The total number of served snapshots by source",
		}, []string{"source"}),
		fetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "weather_fetch_failures_total",
			Help: "The total number of failed forecast fetches",
		}),
		geocodeLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_geocode_lookups_total",
			Help: "The total number of city search lookups",
		}, []string{"success"}),
		favoritesOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "favorites_operations_total",
			Help: "The total number of favorites store operations",
		}, []string{"operation", "success"}),
	}
}

func (m *PrometheusMetricsCollector) RecordCacheHit() {
	m.cacheHits.Inc()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss() {
	m.cacheMisses.Inc()
}

func (m *PrometheusMetricsCollector) RecordFetch(source string) {
	m.fetches.WithLabelValues(source).Inc()
}

func (m *PrometheusMetricsCollector) RecordFetchFailure() {
	m.fetchFailures.Inc()
}

func (m *PrometheusMetricsCollector) RecordGeocode(success bool) {
	m.geocodeLookups.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *PrometheusMetricsCollector) RecordFavoritesOp(op string, success bool) {
	m.favoritesOps.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

// NoopMetricsCollector discards all observations.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCacheHit()                {}
func (NoopMetricsCollector) RecordCacheMiss()               {}
func (NoopMetricsCollector) RecordFetch(string)             {}
func (NoopMetricsCollector) RecordFetchFailure()            {}
func (NoopMetricsCollector) RecordGeocode(bool)             {}
func (NoopMetricsCollector) RecordFavoritesOp(string, bool) {}
