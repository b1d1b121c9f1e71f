package favorites

// Entry represents one favorite city owned by a single identity.
// Only Note (and the update timestamp) are mutable after creation.
type Entry struct {
	ID              string
	CityName        string
	Country         string
	Latitude        float64
	Longitude       float64
	Note            string
	CreatedAtMillis int64
	CreatedBy       string
	UpdatedAtMillis int64
}

// AuthState represents the identity lifecycle of the reconciler
type AuthState int

const (
	AuthStateUninitialized AuthState = iota
	AuthStateAuthenticating
	AuthStateAuthenticated
	AuthStateFailed
)

// String returns the string representation of the auth state
func (s AuthState) String() string {
	switch s {
	case AuthStateAuthenticating:
		return "authenticating"
	case AuthStateAuthenticated:
		return "authenticated"
	case AuthStateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Emission is one full-list update of the live subscription. When Err is
// set the subscription has terminated; a caller recovers by subscribing
// again.
type Emission struct {
	Entries []Entry
	Err     error
}
