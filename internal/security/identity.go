package security

import "context"

// IdentityProvider validates a bearer token and extracts its subject. The
// subject is an opaque identifier (email or user id) resolved to a user by the
// caller. Validation failures mean "unauthenticated", never a crash.
type IdentityProvider interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// jwtIdentityProvider adapts the local TokenManager to the IdentityProvider
// contract. Only access tokens authenticate requests.
type jwtIdentityProvider struct {
	tokens TokenManager
}

func NewJWTIdentityProvider(tokens TokenManager) IdentityProvider {
	return &jwtIdentityProvider{tokens: tokens}
}

func (p *jwtIdentityProvider) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return "", err
	}
	if claims.Type != TokenTypeAccess {
		return "", ErrWrongTokenType
	}
	if claims.Email != "" {
		return claims.Email, nil
	}
	return claims.Subject, nil
}
