package remote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherpocket.app/internal/config"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

const owner = "user-1"

func setupStore(t *testing.T) (*miniredis.Miniredis, *RedisFavoritesStoreAdapter) {
	t.Helper()

	mockRedis := miniredis.RunT(t)
	store, err := NewRedisFavoritesStoreAdapter(&config.RedisConfig{
		Addr:         mockRedis.Addr(),
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return mockRedis, store
}

func record(city, note string) ports.FavoriteRecord {
	return ports.FavoriteRecord{
		CityName:        city,
		Country:         "United Kingdom",
		Latitude:        51.5,
		Longitude:       -0.12,
		Note:            note,
		CreatedAtMillis: 1700000000000,
		CreatedBy:       owner,
		UpdatedAtMillis: 1700000000000,
	}
}

func TestNewRedisFavoritesStoreAdapter(t *testing.T) {
	t.Run("NilConfig", func(t *testing.T) {
		_, err := NewRedisFavoritesStoreAdapter(nil, nil)
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeConfiguration, appErr.Type)
	})

	t.Run("UnreachableBackend", func(t *testing.T) {
		_, err := NewRedisFavoritesStoreAdapter(&config.RedisConfig{Addr: "localhost:1", DialTimeout: 1}, nil)
		assert.True(t, errors.IsNoConnectivityError(err))
	})
}

func TestRedisFavoritesStoreAdapter_AddAndList(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, owner, record("London", "trip"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// ids are server-assigned and unique even for duplicate cities
	id2, err := store.Add(ctx, owner, record("London", "again"))
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)

	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRedisFavoritesStoreAdapter_Add_OwnershipEnforced(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	rec := record("London", "")
	rec.CreatedBy = "someone-else"
	_, err := store.Add(ctx, owner, rec)
	assert.True(t, errors.IsPermissionError(err))

	_, err = store.Add(ctx, "", record("London", ""))
	assert.True(t, errors.IsNotAuthenticatedError(err))

	// lists are path-scoped per identity
	_, err = store.Add(ctx, owner, record("London", ""))
	require.NoError(t, err)
	other := record("Paris", "")
	other.CreatedBy = "user-2"
	_, err = store.Add(ctx, "user-2", other)
	require.NoError(t, err)

	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "London", records[0].CityName)
}

func TestRedisFavoritesStoreAdapter_Add_FieldRules(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	empty := record("", "")
	_, err := store.Add(ctx, owner, empty)
	assert.True(t, errors.IsValidationError(err))

	long := record("London", string(make([]byte, 501)))
	_, err = store.Add(ctx, owner, long)
	assert.True(t, errors.IsValidationError(err))
}

func TestRedisFavoritesStoreAdapter_UpdateNote(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, owner, record("London", "old note"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateNote(ctx, owner, id, "new note", 1700000100000))

	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new note", records[0].Note)
	assert.Equal(t, int64(1700000100000), records[0].UpdatedAtMillis)
	// immutable fields untouched
	assert.Equal(t, owner, records[0].CreatedBy)
	assert.Equal(t, int64(1700000000000), records[0].CreatedAtMillis)
}

func TestRedisFavoritesStoreAdapter_UpdateNote_MissingIDIsNoOp(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateNote(ctx, owner, "no-such-id", "note", 1))

	// no record was created by the no-op path
	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisFavoritesStoreAdapter_Delete_Idempotent(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, owner, record("London", ""))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, owner, id))
	require.NoError(t, store.Delete(ctx, owner, id))
	require.NoError(t, store.Delete(ctx, owner, "never-existed"))

	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisFavoritesStoreAdapter_List_SkipsMalformedRecords(t *testing.T) {
	mockRedis, store := setupStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, owner, record("London", ""))
	require.NoError(t, err)

	// corrupt data and records missing required fields sit alongside
	mockRedis.HSet("favorites:"+owner, "broken", "{not json")
	mockRedis.HSet("favorites:"+owner, "incomplete", `{"id":"incomplete","note":"no city or owner"}`)

	records, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "London", records[0].CityName)
}

func TestRedisFavoritesStoreAdapter_Watch(t *testing.T) {
	_, store := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := store.Add(ctx, owner, record("London", ""))
	require.NoError(t, err)

	updates, err := store.Watch(ctx, owner)
	require.NoError(t, err)

	// immediate current snapshot on subscribe
	first := receiveUpdate(t, updates)
	require.NoError(t, first.Err)
	require.Len(t, first.Entries, 1)

	// a mutation triggers a fresh full snapshot
	_, err = store.Add(ctx, owner, record("Paris", ""))
	require.NoError(t, err)

	second := receiveUpdate(t, updates)
	require.NoError(t, second.Err)
	assert.Len(t, second.Entries, 2)
}

func TestRedisFavoritesStoreAdapter_Watch_ReleasedOnCancel(t *testing.T) {
	_, store := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	updates, err := store.Watch(ctx, owner)
	require.NoError(t, err)

	// drain the initial snapshot, then release
	receiveUpdate(t, updates)
	cancel()

	select {
	case _, open := <-updates:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancellation")
	}
}

func TestRedisFavoritesStoreAdapter_Watch_RequiresIdentity(t *testing.T) {
	_, store := setupStore(t)
	_, err := store.Watch(context.Background(), "")
	assert.True(t, errors.IsNotAuthenticatedError(err))
}

func receiveUpdate(t *testing.T, ch <-chan ports.FavoritesUpdate) ports.FavoritesUpdate {
	t.Helper()
	select {
	case update := <-ch:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for favorites update")
		return ports.FavoritesUpdate{}
	}
}
