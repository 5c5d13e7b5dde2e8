package auth

import "context"

const (
	// LocalDevToken is the hardcoded bearer token for local development only.
	LocalDevToken = "moodtrack-local-dev-token"

	// LocalDevUserID is the identity LocalDevToken resolves to.
	LocalDevUserID = "moodtrack-dev"
)

// StaticAuthenticator resolves tokens from a fixed map. It backs local
// development and handler tests; production uses JWTAuthenticator.
type StaticAuthenticator struct {
	tokens map[string]string
}

// NewStaticAuthenticator builds an authenticator over a token->userID map.
func NewStaticAuthenticator(tokens map[string]string) *StaticAuthenticator {
	m := make(map[string]string, len(tokens))
	for k, v := range tokens {
		m[k] = v
	}
	return &StaticAuthenticator{tokens: m}
}

// NewLocalDevAuthenticator recognizes only LocalDevToken.
func NewLocalDevAuthenticator() *StaticAuthenticator {
	return NewStaticAuthenticator(map[string]string{LocalDevToken: LocalDevUserID})
}

// ValidateToken resolves the token against the fixed map.
func (a *StaticAuthenticator) ValidateToken(ctx context.Context, token string) (*Identity, error) {
	userID, ok := a.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: userID}, nil
}
