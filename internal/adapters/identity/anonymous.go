// Package identity provides the anonymous sign-in adapter. The client never
// collects credentials; an identity is a device-local random id that is
// minted once and reused for every later session.
package identity

import (
	"context"

	"github.com/google/uuid"
	"weatherpocket.app/internal/ports"
	"weatherpocket.app/pkg/errors"
)

// AnonymousIdentityAdapter implements the IdentityProvider port by persisting
// a generated session id in the local store.
type AnonymousIdentityAdapter struct {
	store  ports.LocalStore
	logger ports.Logger
}

// NewAnonymousIdentityAdapter creates an anonymous identity provider
func NewAnonymousIdentityAdapter(store ports.LocalStore, logger ports.Logger) (*AnonymousIdentityAdapter, error) {
	if store == nil {
		return nil, errors.NewValidationError("local store cannot be nil")
	}
	return &AnonymousIdentityAdapter{store: store, logger: logger}, nil
}

// SignInAnonymously returns the stored session id, minting and persisting a
// new one on first use. The id is stable across restarts so a device keeps
// its favorites list.
func (a *AnonymousIdentityAdapter) SignInAnonymously(ctx context.Context) (string, error) {
	id, err := a.store.SessionID(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.IsNotFoundError(err) {
		return "", errors.NewAuthError("failed to read session identity", err)
	}

	id = uuid.NewString()
	if err := a.store.SaveSessionID(ctx, id); err != nil {
		return "", errors.NewAuthError("failed to persist session identity", err)
	}
	if a.logger != nil {
		a.logger.Info("Created anonymous identity", ports.F("uid", id))
	}
	return id, nil
}
