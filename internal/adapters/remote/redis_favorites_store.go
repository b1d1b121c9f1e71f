package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"weatherpocket.app/internal/config"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
	"weatherpocket.app/pkg/validation"
)

// RedisFavoritesStoreAdapter implements the RemoteFavoritesStore port on a
// Redis backend. Each identity owns one hash keyed by entry id; every
// mutation publishes on the identity's update channel, which Watch turns
// into full-snapshot emissions.
type RedisFavoritesStoreAdapter struct {
	client *redis.Client
	logger ports.Logger
}

// NewRedisFavoritesStoreAdapter creates the store and verifies connectivity
func NewRedisFavoritesStoreAdapter(cfg *config.RedisConfig, logger ports.Logger) (*RedisFavoritesStoreAdapter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewNoConnectivityError("failed to connect to favorites backend", err)
	}

	return &RedisFavoritesStoreAdapter{client: client, logger: logger}, nil
}

func listKey(owner string) string {
	return "favorites:" + owner
}

func channelKey(owner string) string {
	return "favorites:" + owner + ":updates"
}

// Add stores a new record under a server-assigned id. Writes are permitted
// only when the record's CreatedBy matches the owning identity.
func (s *RedisFavoritesStoreAdapter) Add(ctx context.Context, owner string, record ports.FavoriteRecord) (string, error) {
	if err := s.authorize(owner, record.CreatedBy); err != nil {
		return "", err
	}
	if len(record.CityName) < 1 || len(record.CityName) > validation.MaxCityNameLength {
		return "", errors.NewValidationError("cityName must be 1-100 characters")
	}
	if len(record.Note) > validation.MaxNoteLength {
		return "", errors.NewValidationError("note must be at most 500 characters")
	}

	record.ID = uuid.NewString()
	data, err := json.Marshal(record)
	if err != nil {
		return "", errors.NewDatabaseError("encode favorite record", err)
	}

	if err := s.client.HSet(ctx, listKey(owner), record.ID, data).Err(); err != nil {
		return "", errors.NewDatabaseError("store favorite record", err)
	}
	s.publish(ctx, owner)
	return record.ID, nil
}

// UpdateNote changes exactly the note and update timestamp of one record.
// A missing id neither errors nor creates a record.
func (s *RedisFavoritesStoreAdapter) UpdateNote(ctx context.Context, owner, id, note string, updatedAtMillis int64) error {
	if err := s.authorize(owner, owner); err != nil {
		return err
	}
	if len(note) > validation.MaxNoteLength {
		return errors.NewValidationError("note must be at most 500 characters")
	}

	raw, err := s.client.HGet(ctx, listKey(owner), id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return errors.NewDatabaseError("read favorite record", err)
	}

	var record ports.FavoriteRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return errors.NewDatabaseError("decode favorite record", err)
	}

	record.Note = note
	record.UpdatedAtMillis = updatedAtMillis
	data, err := json.Marshal(record)
	if err != nil {
		return errors.NewDatabaseError("encode favorite record", err)
	}

	if err := s.client.HSet(ctx, listKey(owner), id, data).Err(); err != nil {
		return errors.NewDatabaseError("store favorite record", err)
	}
	s.publish(ctx, owner)
	return nil
}

// Delete removes a record; deleting a nonexistent id is not an error.
func (s *RedisFavoritesStoreAdapter) Delete(ctx context.Context, owner, id string) error {
	if err := s.authorize(owner, owner); err != nil {
		return err
	}

	if err := s.client.HDel(ctx, listKey(owner), id).Err(); err != nil {
		return errors.NewDatabaseError("delete favorite record", err)
	}
	s.publish(ctx, owner)
	return nil
}

// List returns the owner's records, unordered. Malformed stored records
// are skipped rather than failing the whole read.
func (s *RedisFavoritesStoreAdapter) List(ctx context.Context, owner string) ([]ports.FavoriteRecord, error) {
	if err := s.authorize(owner, owner); err != nil {
		return nil, err
	}

	raw, err := s.client.HGetAll(ctx, listKey(owner)).Result()
	if err != nil {
		return nil, errors.NewDatabaseError("read favorites list", err)
	}

	records := make([]ports.FavoriteRecord, 0, len(raw))
	for id, value := range raw {
		var record ports.FavoriteRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil || record.ID == "" || record.CityName == "" || record.CreatedBy == "" {
			if s.logger != nil {
				s.logger.Warn("Skipping malformed favorite record", ports.F("id", id))
			}
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Watch emits the current list immediately, then a fresh full list after
// every published change. The subscription is released when the context is
// cancelled; on a stream failure one final update carries the error and
// the channel closes.
func (s *RedisFavoritesStoreAdapter) Watch(ctx context.Context, owner string) (<-chan ports.FavoritesUpdate, error) {
	if err := s.authorize(owner, owner); err != nil {
		return nil, err
	}

	pubsub := s.client.Subscribe(ctx, channelKey(owner))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.NewDatabaseError("subscribe to favorites updates", err)
	}

	updates := make(chan ports.FavoritesUpdate, 1)
	messages := pubsub.Channel()

	go func() {
		defer close(updates)
		defer func() {
			if err := pubsub.Close(); err != nil && s.logger != nil {
				s.logger.Warn("Failed to close favorites subscription", ports.F("error", err))
			}
		}()

		if !s.emitSnapshot(ctx, owner, updates) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					// transport stream ended underneath us
					select {
					case updates <- ports.FavoritesUpdate{Err: errors.NewDatabaseError("favorites update stream closed", nil)}:
					case <-ctx.Done():
					}
					return
				}
				if !s.emitSnapshot(ctx, owner, updates) {
					return
				}
			}
		}
	}()

	return updates, nil
}

// emitSnapshot sends one full-list update; it reports false when the watch
// loop should stop (context cancelled or a terminal error was emitted).
func (s *RedisFavoritesStoreAdapter) emitSnapshot(ctx context.Context, owner string, updates chan<- ports.FavoritesUpdate) bool {
	records, err := s.List(ctx, owner)
	if err != nil {
		select {
		case updates <- ports.FavoritesUpdate{Err: err}:
		case <-ctx.Done():
		}
		return false
	}

	select {
	case updates <- ports.FavoritesUpdate{Entries: records}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *RedisFavoritesStoreAdapter) publish(ctx context.Context, owner string) {
	if err := s.client.Publish(ctx, channelKey(owner), "sync").Err(); err != nil && s.logger != nil {
		s.logger.Warn("Failed to publish favorites update", ports.F("error", err))
	}
}

// authorize is the store-boundary ownership rule: an empty identity cannot
// touch any path, and a writer may not write records owned by another
// identity.
func (s *RedisFavoritesStoreAdapter) authorize(owner, createdBy string) error {
	if owner == "" {
		return errors.NewNotAuthenticatedError("favorites access requires an identity")
	}
	if createdBy != owner {
		return errors.NewPermissionError(fmt.Sprintf("identity %q cannot write records owned by %q", owner, createdBy))
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisFavoritesStoreAdapter) Close() error {
	if err := s.client.Close(); err != nil {
		return errors.NewDatabaseError("close favorites backend connection", err)
	}
	return nil
}
