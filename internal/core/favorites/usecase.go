package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
	"weatherpocket.app/pkg/validation"
)

type UseCase struct {
	store    ports.RemoteFavoritesStore
	identity ports.IdentityProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector

	mu    sync.Mutex
	state AuthState
	uid   string

	now func() time.Time
}

type UseCaseDependencies struct {
	Store    ports.RemoteFavoritesStore
	Identity ports.IdentityProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("favorites store is required")
	}
	if deps.Identity == nil {
		return nil, errors.NewValidationError("identity provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		store:    deps.Store,
		identity: deps.Identity,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		state:    AuthStateUninitialized,
		now:      time.Now,
	}, nil
}

// Authenticate establishes the anonymous identity scoping all favorite
// operations. It is one-shot: a success is never repeated, a failure is
// terminal until the caller invokes Authenticate again - that call is the
// explicit retry, nothing retries automatically.
func (uc *UseCase) Authenticate(ctx context.Context) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch uc.state {
	case AuthStateAuthenticated:
		return uc.uid, nil
	case AuthStateAuthenticating:
		return "", errors.NewAuthError("authentication already in progress", nil)
	}

	uc.state = AuthStateAuthenticating
	id, err := uc.identity.SignInAnonymously(ctx)
	if err != nil {
		uc.state = AuthStateFailed
		uc.logger.Error("Anonymous sign-in failed", ports.F("error", err))
		return "", errors.NewAuthError("anonymous sign-in failed", err)
	}

	uc.state = AuthStateAuthenticated
	uc.uid = id
	uc.logger.Info("Anonymous identity established", ports.F("uid", id))
	return id, nil
}

// State returns the current identity state.
func (uc *UseCase) State() AuthState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// Add stores a new favorite. CreatedBy is forced to the authenticated
// identity regardless of the caller-supplied value, and the id is assigned
// by the store. The presented list is not mutated here; the update arrives
// through the live subscription.
func (uc *UseCase) Add(ctx context.Context, entry Entry) (string, error) {
	uid, err := uc.requireIdentity()
	if err != nil {
		return "", err
	}

	if err := validation.ValidateFavorite(validation.FavoriteInput{
		CityName:  entry.CityName,
		Country:   entry.Country,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
		Note:      entry.Note,
	}); err != nil {
		return "", errors.NewValidationError("invalid favorite: " + err.Error())
	}

	nowMillis := uc.now().UnixMilli()
	record := ports.FavoriteRecord{
		CityName:        entry.CityName,
		Country:         entry.Country,
		Latitude:        entry.Latitude,
		Longitude:       entry.Longitude,
		Note:            entry.Note,
		CreatedAtMillis: nowMillis,
		CreatedBy:       uid,
		UpdatedAtMillis: nowMillis,
	}

	id, err := uc.store.Add(ctx, uid, record)
	if err != nil {
		uc.metrics.RecordFavoritesOp("add", false)
		uc.logger.Error("Failed to add favorite", ports.F("city", entry.CityName), ports.F("error", err))
		return "", err
	}

	uc.metrics.RecordFavoritesOp("add", true)
	uc.logger.Debug("Favorite added", ports.F("id", id), ports.F("city", entry.CityName))
	return id, nil
}

// UpdateNote changes exactly the note and update timestamp of one entry.
// A missing id is a silent no-op at the store; no record is created.
func (uc *UseCase) UpdateNote(ctx context.Context, id, note string) error {
	uid, err := uc.requireIdentity()
	if err != nil {
		return err
	}
	if id == "" {
		return errors.NewValidationError("favorite id cannot be empty")
	}
	if err := validation.ValidateNote(note); err != nil {
		return errors.NewValidationError("invalid note: " + err.Error())
	}

	if err := uc.store.UpdateNote(ctx, uid, id, note, uc.now().UnixMilli()); err != nil {
		uc.metrics.RecordFavoritesOp("update_note", false)
		return err
	}
	uc.metrics.RecordFavoritesOp("update_note", true)
	return nil
}

// Delete removes an entry; deleting a nonexistent id is not an error.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	uid, err := uc.requireIdentity()
	if err != nil {
		return err
	}
	if id == "" {
		return errors.NewValidationError("favorite id cannot be empty")
	}

	if err := uc.store.Delete(ctx, uid, id); err != nil {
		uc.metrics.RecordFavoritesOp("delete", false)
		return err
	}
	uc.metrics.RecordFavoritesOp("delete", true)
	return nil
}

// IsCityFavorited reports whether a favorite with this exact city name
// exists. The check is advisory only: it races with concurrent adds and is
// not atomic with a following Add, so duplicates remain possible.
func (uc *UseCase) IsCityFavorited(ctx context.Context, cityName string) (bool, error) {
	uid, err := uc.requireIdentity()
	if err != nil {
		return false, err
	}

	records, err := uc.store.List(ctx, uid)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.CityName == cityName {
			return true, nil
		}
	}
	return false, nil
}

// Subscribe opens the live list stream. Every emission is the entire
// current list sorted by update time descending - published state is
// replaced wholesale, never diffed. On a stream error one final emission
// carries the error and the channel closes; recovery is a fresh Subscribe
// call. Cancel the context to release the subscription.
func (uc *UseCase) Subscribe(ctx context.Context) (<-chan Emission, error) {
	uid, err := uc.requireIdentity()
	if err != nil {
		return nil, err
	}

	updates, err := uc.store.Watch(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make(chan Emission, 1)
	go func() {
		defer close(out)
		for update := range updates {
			if update.Err != nil {
				uc.logger.Error("Favorites subscription failed", ports.F("error", update.Err))
				select {
				case out <- Emission{Err: update.Err}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case out <- Emission{Entries: uc.sortedEntries(update.Entries)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (uc *UseCase) requireIdentity() (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state != AuthStateAuthenticated {
		return "", errors.NewNotAuthenticatedError("favorites require an authenticated identity")
	}
	return uc.uid, nil
}

func (uc *UseCase) sortedEntries(records []ports.FavoriteRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			ID:              r.ID,
			CityName:        r.CityName,
			Country:         r.Country,
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,
			Note:            r.Note,
			CreatedAtMillis: r.CreatedAtMillis,
			CreatedBy:       r.CreatedBy,
			UpdatedAtMillis: r.UpdatedAtMillis,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAtMillis > entries[j].UpdatedAtMillis
	})
	return entries
}
