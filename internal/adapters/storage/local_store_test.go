package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

func setupStore(t *testing.T) *LocalStoreAdapter {
	t.Helper()

	// one named in-memory database per test, shared across pool connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := NewLocalStoreAdapter(db, 10)
	require.NoError(t, err)
	return store
}

func TestLocalStoreAdapter_SnapshotSlot(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// empty slot is NotFound, never an empty success
	_, err := store.LoadSnapshot(ctx)
	assert.True(t, errors.IsNotFoundError(err))

	first := ports.SnapshotData{
		CityName:    "London",
		Country:     "United Kingdom",
		Temperature: 12.5,
		Condition:   "Partly cloudy",
		Daily:       []ports.DailyData{{DateLabel: "Sunday, August 23", MaxTemp: 15.1, MinTemp: 9.3}},
		Hourly:      []ports.HourlyData{{TimeLabel: "12:00", Temperature: 12.5}},
	}
	require.NoError(t, store.SaveSnapshot(ctx, first, 1700000000000))

	cached, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cached.Snapshot)
	assert.Equal(t, int64(1700000000000), cached.FetchedAtMillis)

	// a second save is a full overwrite: exactly one snapshot lives in the store
	second := ports.SnapshotData{CityName: "Paris", Country: "France", Temperature: 19.0}
	require.NoError(t, store.SaveSnapshot(ctx, second, 1700000100000))

	cached, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Paris", cached.Snapshot.CityName)
	assert.Empty(t, cached.Snapshot.Daily)
	assert.Equal(t, int64(1700000100000), cached.FetchedAtMillis)
}

func TestLocalStoreAdapter_UnitPreference(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	unit, err := store.UnitPreference(ctx)
	require.NoError(t, err)
	assert.Empty(t, unit)

	require.NoError(t, store.SaveUnitPreference(ctx, "fahrenheit"))
	unit, err = store.UnitPreference(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fahrenheit", unit)
}

func TestLocalStoreAdapter_History(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, store.PushHistory(ctx, "London"))
	require.NoError(t, store.PushHistory(ctx, "Paris"))
	require.NoError(t, store.PushHistory(ctx, "Tokyo"))

	history, err = store.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "Paris", "London"}, history)
}

func TestLocalStoreAdapter_History_DedupMovesToFront(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PushHistory(ctx, "London"))
	require.NoError(t, store.PushHistory(ctx, "Paris"))
	require.NoError(t, store.PushHistory(ctx, "London"))
	require.NoError(t, store.PushHistory(ctx, "London"))

	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"London", "Paris"}, history)
}

func TestLocalStoreAdapter_History_CaseSensitive(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PushHistory(ctx, "London"))
	require.NoError(t, store.PushHistory(ctx, "london"))

	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"london", "London"}, history)
}

func TestLocalStoreAdapter_History_CapsAtLimit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 1; i <= 11; i++ {
		require.NoError(t, store.PushHistory(ctx, fmt.Sprintf("City-%d", i)))
	}

	history, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 10)
	assert.Equal(t, "City-11", history[0])
	// the oldest entry dropped
	assert.NotContains(t, history, "City-1")
}

func TestLocalStoreAdapter_History_StripsSeparator(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PushHistory(ctx, "Lon|don"))

	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"London"}, history)

	err = store.PushHistory(ctx, "   ")
	assert.True(t, errors.IsValidationError(err))
}

func TestLocalStoreAdapter_SessionID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.SessionID(ctx)
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, store.SaveSessionID(ctx, "anon-123"))
	id, err := store.SessionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anon-123", id)

	err = store.SaveSessionID(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}
