package ports

import "context"

// FavoriteRecord is the wire form of one favorites entry.
type FavoriteRecord struct {
	ID              string  `json:"id"`
	CityName        string  `json:"city_name"`
	Country         string  `json:"country"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Note            string  `json:"note"`
	CreatedAtMillis int64   `json:"created_at"`
	CreatedBy       string  `json:"created_by"`
	UpdatedAtMillis int64   `json:"updated_at"`
}

// FavoritesUpdate is one emission of the live list stream. When Err is set
// the stream is terminating and no further updates follow.
type FavoritesUpdate struct {
	Entries []FavoriteRecord
	Err     error
}

// RemoteFavoritesStore defines the contract for the cloud favorites backend.
// All operations are scoped to the owner identity; the adapter rejects
// writes whose CreatedBy differs from the owner.
type RemoteFavoritesStore interface {
	// Add stores a new record and returns the server-assigned id.
	Add(ctx context.Context, owner string, record FavoriteRecord) (string, error)
	// UpdateNote changes exactly the note and update timestamp of one
	// record. A missing id is a silent no-op.
	UpdateNote(ctx context.Context, owner, id, note string, updatedAtMillis int64) error
	// Delete removes a record; deleting a nonexistent id is not an error.
	Delete(ctx context.Context, owner, id string) error
	// List returns the current records, unordered. Malformed stored
	// records are skipped, never surfaced as errors.
	List(ctx context.Context, owner string) ([]FavoriteRecord, error)
	// Watch emits an immediate full snapshot, then a fresh full snapshot
	// after every change, until the context is cancelled or the stream
	// fails (one final update with Err set, then the channel closes).
	Watch(ctx context.Context, owner string) (<-chan FavoritesUpdate, error)
}

// IdentityProvider defines the contract for the external identity service.
type IdentityProvider interface {
	// SignInAnonymously establishes (or restores) an anonymous identity
	// and returns its id.
	SignInAnonymously(ctx context.Context) (string, error)
}
