// Package app assembles the client: configuration, the on-device database,
// the adapters, and the use cases behind a single facade.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"weatherpocket.app/internal/adapters/external"
	"weatherpocket.app/internal/adapters/identity"
	"weatherpocket.app/internal/adapters/infrastructure"
	"weatherpocket.app/internal/adapters/remote"
	"weatherpocket.app/internal/adapters/storage"
	"weatherpocket.app/internal/config"
	"weatherpocket.app/internal/core/favorites"
	"weatherpocket.app/internal/core/weather"
	"weatherpocket.app/internal/ports"
)

// Application represents the assembled client with all its dependencies
type Application struct {
	config         *config.Config
	db             *gorm.DB
	logger         ports.Logger
	weather        *weather.UseCase
	favorites      *favorites.UseCase
	favoritesStore *remote.RedisFavoritesStoreAdapter
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{
		logger: infrastructure.NewSlogLoggerAdapter(slog.LevelInfo),
	}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		app.logger.Error("Failed to load configuration", ports.F("error", err))
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	return nil
}

func (app *Application) initializeDatabase() error {
	db, err := gorm.Open(sqlite.Open(app.config.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		app.logger.Error("Failed to open on-device database", ports.F("error", err))
		return fmt.Errorf("open on-device database: %w", err)
	}

	app.db = db
	return nil
}

func (app *Application) initializeUseCases() error {
	metrics := infrastructure.NewPrometheusMetricsCollector(nil)

	store, err := storage.NewLocalStoreAdapter(app.db, app.config.Weather.HistoryLimit)
	if err != nil {
		return fmt.Errorf("create local store: %w", err)
	}

	provider := external.NewOpenMeteoProviderAdapter(external.OpenMeteoProviderParams{
		GeocodingBaseURL: app.config.Weather.GeocodingBaseURL,
		ForecastBaseURL:  app.config.Weather.ForecastBaseURL,
		Timeout:          time.Duration(app.config.Weather.TimeoutSeconds) * time.Second,
		Logger:           app.logger,
	})

	weatherUC, err := weather.NewUseCase(weather.UseCaseDependencies{
		Provider:     provider,
		Store:        store,
		Connectivity: infrastructure.NewDialConnectivityChecker("", 0),
		Config:       app.config,
		Logger:       app.logger,
		Metrics:      metrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	app.weather = weatherUC

	// favorites sync is optional; offline-only installs skip the backend
	if !app.config.Sync.Enabled {
		app.logger.Info("Favorites sync disabled")
		return nil
	}

	favoritesStore, err := remote.NewRedisFavoritesStoreAdapter(&app.config.Sync.Redis, app.logger)
	if err != nil {
		return fmt.Errorf("create favorites store: %w", err)
	}
	app.favoritesStore = favoritesStore

	identityProvider, err := identity.NewAnonymousIdentityAdapter(store, app.logger)
	if err != nil {
		return fmt.Errorf("create identity provider: %w", err)
	}

	favoritesUC, err := favorites.NewUseCase(favorites.UseCaseDependencies{
		Store:    favoritesStore,
		Identity: identityProvider,
		Logger:   app.logger,
		Metrics:  metrics,
	})
	if err != nil {
		return fmt.Errorf("create favorites use case: %w", err)
	}
	app.favorites = favoritesUC

	return nil
}

// Weather returns the forecast use case
func (app *Application) Weather() *weather.UseCase {
	return app.weather
}

// Favorites returns the favorites use case, or nil when sync is disabled
func (app *Application) Favorites() *favorites.UseCase {
	return app.favorites
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// Shutdown releases the backend connection and the on-device database
func (app *Application) Shutdown() error {
	if app.favoritesStore != nil {
		if err := app.favoritesStore.Close(); err != nil {
			app.logger.Warn("Error closing favorites backend", ports.F("error", err))
		}
	}

	if app.db != nil {
		sqlDB, err := app.db.DB()
		if err != nil {
			return fmt.Errorf("resolve database handle: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("close on-device database: %w", err)
		}
	}

	return nil
}
