// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and faked for testing.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	ForecastProvider ForecastProvider
	LocalStore       LocalStore
	Connectivity     ConnectivityChecker

	// Favorites
	FavoritesStore RemoteFavoritesStore
	Identity       IdentityProvider

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
}
