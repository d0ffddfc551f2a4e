package domain

import (
	"context"
	"time"
)

// RoleAdmin is the role carried by tokens allowed to create and edit events.
const RoleAdmin = "admin"

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	Subject string
	Email   string
	Roles   []string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a token and returns its principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// PasswordChecker compares a stored hash against a plaintext password.
type PasswordChecker interface {
	Compare(hash, password string) error
}

// AuthService authenticates the configured administrator.
type AuthService interface {
	// Login returns a signed token. Returns ErrUnauthorized on bad credentials.
	Login(ctx context.Context, email, password string) (string, error)
}
