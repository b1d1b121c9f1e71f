package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

// fakeSessionStore implements only the session slot; the embedded interface
// panics on any other call, which no test here makes.
type fakeSessionStore struct {
	ports.LocalStore
	id       string
	readErr  error
	writeErr error
	saves    int
}

func (s *fakeSessionStore) SessionID(_ context.Context) (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	if s.id == "" {
		return "", errors.NewNotFoundError("session id not stored")
	}
	return s.id, nil
}

func (s *fakeSessionStore) SaveSessionID(_ context.Context, id string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.id = id
	s.saves++
	return nil
}

func TestAnonymousIdentityAdapter_MintsOnce(t *testing.T) {
	store := &fakeSessionStore{}
	adapter, err := NewAnonymousIdentityAdapter(store, nil)
	require.NoError(t, err)

	first, err := adapter.SignInAnonymously(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Equal(t, 1, store.saves)

	// the same device keeps the same identity
	second, err := adapter.SignInAnonymously(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.saves)
}

func TestAnonymousIdentityAdapter_ReusesStoredID(t *testing.T) {
	store := &fakeSessionStore{id: "anon-existing"}
	adapter, err := NewAnonymousIdentityAdapter(store, nil)
	require.NoError(t, err)

	id, err := adapter.SignInAnonymously(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "anon-existing", id)
	assert.Zero(t, store.saves)
}

func TestAnonymousIdentityAdapter_StoreFailures(t *testing.T) {
	t.Run("ReadFailure", func(t *testing.T) {
		store := &fakeSessionStore{readErr: errors.NewDatabaseError("disk gone", nil)}
		adapter, err := NewAnonymousIdentityAdapter(store, nil)
		require.NoError(t, err)

		_, err = adapter.SignInAnonymously(context.Background())
		assert.True(t, errors.IsAuthError(err))
	})

	t.Run("WriteFailure", func(t *testing.T) {
		store := &fakeSessionStore{writeErr: errors.NewDatabaseError("disk gone", nil)}
		adapter, err := NewAnonymousIdentityAdapter(store, nil)
		require.NoError(t, err)

		_, err = adapter.SignInAnonymously(context.Background())
		assert.True(t, errors.IsAuthError(err))
	})
}
