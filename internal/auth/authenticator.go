package auth

import (
	"context"
	"errors"
)

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID string `json:"userId"`
}

// Authenticator resolves a bearer token to an identity.
type Authenticator interface {
	// ValidateToken verifies the token and returns the identity it carries.
	// Any failure is reported as (or wraps) ErrInvalidToken.
	ValidateToken(ctx context.Context, token string) (*Identity, error)
}

// ErrInvalidToken is returned for malformed, expired or unknown tokens.
var ErrInvalidToken = errors.New("invalid token")

type identityKey struct{}

// WithIdentity stores the authenticated identity on the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the authenticated identity, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
