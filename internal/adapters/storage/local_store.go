package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

// Logical keys of the persisted on-device state.
const (
	keySnapshot  = "weather.snapshot"
	keyFetchedAt = "weather.fetched_at"
	keyUnit      = "settings.unit"
	keyHistory   = "search.history"
	keySession   = "identity.uid"
)

// historySeparator joins persisted history entries; it is stripped from
// city names before they enter history.
const historySeparator = "|"

const defaultHistoryLimit = 10

// StateRecord is the database model for one key-value state slot
type StateRecord struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (StateRecord) TableName() string {
	return "app_state"
}

// LocalStoreAdapter implements the LocalStore port using GORM over sqlite
type LocalStoreAdapter struct {
	db           *gorm.DB
	historyLimit int
}

// NewLocalStoreAdapter creates the local store and runs its migration
func NewLocalStoreAdapter(db *gorm.DB, historyLimit int) (*LocalStoreAdapter, error) {
	if db == nil {
		return nil, errors.NewValidationError("database handle cannot be nil")
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, errors.NewDatabaseError("migrate app_state", err)
	}
	return &LocalStoreAdapter{db: db, historyLimit: historyLimit}, nil
}

// LoadSnapshot reads the single cache slot. An empty slot is a NotFound
// error, never an empty success.
func (s *LocalStoreAdapter) LoadSnapshot(ctx context.Context) (*ports.CachedSnapshot, error) {
	raw, err := s.get(ctx, keySnapshot)
	if err != nil {
		return nil, err
	}

	var snapshot ports.SnapshotData
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, errors.NewDatabaseError("decode cached snapshot", err)
	}

	fetchedAt := int64(0)
	if rawTS, err := s.get(ctx, keyFetchedAt); err == nil {
		if parsed, parseErr := strconv.ParseInt(rawTS, 10, 64); parseErr == nil {
			fetchedAt = parsed
		}
	}

	return &ports.CachedSnapshot{Snapshot: snapshot, FetchedAtMillis: fetchedAt}, nil
}

// SaveSnapshot overwrites the single cache slot with snapshot and timestamp.
func (s *LocalStoreAdapter) SaveSnapshot(ctx context.Context, snapshot ports.SnapshotData, fetchedAtMillis int64) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewDatabaseError("encode snapshot", err)
	}
	if err := s.set(ctx, keySnapshot, string(data)); err != nil {
		return err
	}
	return s.set(ctx, keyFetchedAt, strconv.FormatInt(fetchedAtMillis, 10))
}

// UnitPreference returns the persisted unit string, or empty when unset.
func (s *LocalStoreAdapter) UnitPreference(ctx context.Context) (string, error) {
	raw, err := s.get(ctx, keyUnit)
	if errors.IsNotFoundError(err) {
		return "", nil
	}
	return raw, err
}

func (s *LocalStoreAdapter) SaveUnitPreference(ctx context.Context, unit string) error {
	return s.set(ctx, keyUnit, unit)
}

// History returns city names most-recent-first.
func (s *LocalStoreAdapter) History(ctx context.Context) ([]string, error) {
	raw, err := s.get(ctx, keyHistory)
	if errors.IsNotFoundError(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	parts := strings.Split(raw, historySeparator)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			names = append(names, part)
		}
	}
	return names, nil
}

// PushHistory moves the name to the front with set semantics on the exact
// name, capping at the history limit (oldest dropped).
func (s *LocalStoreAdapter) PushHistory(ctx context.Context, cityName string) error {
	name := strings.TrimSpace(strings.ReplaceAll(cityName, historySeparator, ""))
	if name == "" {
		return errors.NewValidationError("city name cannot be blank")
	}

	existing, err := s.History(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, s.historyLimit)
	names = append(names, name)
	for _, prev := range existing {
		if len(names) >= s.historyLimit {
			break
		}
		if prev != name {
			names = append(names, prev)
		}
	}

	return s.set(ctx, keyHistory, strings.Join(names, historySeparator))
}

// SessionID returns the persisted anonymous identity, or NotFound.
func (s *LocalStoreAdapter) SessionID(ctx context.Context) (string, error) {
	return s.get(ctx, keySession)
}

func (s *LocalStoreAdapter) SaveSessionID(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("session id cannot be empty")
	}
	return s.set(ctx, keySession, id)
}

func (s *LocalStoreAdapter) get(ctx context.Context, key string) (string, error) {
	var record StateRecord
	result := s.db.WithContext(ctx).First(&record, "key = ?", key)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", errors.NewNotFoundError("no value for " + key)
		}
		return "", errors.NewDatabaseError("read "+key, result.Error)
	}
	return record.Value, nil
}

// set is a full overwrite of one slot; the database serializes writers.
func (s *LocalStoreAdapter) set(ctx context.Context, key, value string) error {
	record := StateRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record)
	if result.Error != nil {
		return errors.NewDatabaseError("write "+key, result.Error)
	}
	return nil
}
