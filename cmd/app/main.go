package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"weatherpocket.app/internal/app"
	"weatherpocket.app/internal/core/weather"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	query := "London"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, application, query); err != nil {
		slog.Error("Request failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.Application, query string) error {
	uc := application.Weather()

	locations, err := uc.FetchCities(ctx, query)
	if err != nil {
		return err
	}

	snapshot, err := uc.FetchWeather(ctx, locations[0])
	if err != nil {
		return err
	}
	printSnapshot(snapshot)

	history, err := uc.History(ctx)
	if err == nil && len(history) > 0 {
		fmt.Printf("\nRecent searches: %v\n", history)
	}

	if favs := application.Favorites(); favs != nil {
		uid, err := favs.Authenticate(ctx)
		if err != nil {
			return err
		}
		slog.Info("Signed in", "uid", uid)
	}

	return nil
}

func printSnapshot(s *weather.Snapshot) {
	unit := "°"
	header := fmt.Sprintf("%s, %s", s.CityName, s.Country)
	if s.IsOffline {
		header += " (offline)"
	}
	fmt.Println(header)
	fmt.Printf("%s %s  %.1f%s (feels like %.1f%s)\n", s.Icon, s.Condition, s.Temperature, unit, s.FeelsLike, unit)
	fmt.Printf("Humidity %.0f%%  Wind %.1f km/h  Updated %s\n", s.Humidity, s.WindSpeed, s.LastUpdateLabel)

	for _, day := range s.Daily {
		fmt.Printf("  %s  %s %s  %.1f%s / %.1f%s\n", day.DateLabel, day.Icon, day.Condition, day.MaxTemp, unit, day.MinTemp, unit)
	}
}
