package services

import (
	"context"
	"fmt"
	"time"

	"devevents/internal/domain"
)

type authService struct {
	issuer            domain.TokenIssuer
	passwords         domain.PasswordChecker
	adminEmail        string
	adminPasswordHash string
	jwtExpiry         time.Duration
}

// NewAuthService creates an AuthService for the single configured administrator.
// Login always fails when adminEmail or adminPasswordHash is empty.
func NewAuthService(issuer domain.TokenIssuer, passwords domain.PasswordChecker, adminEmail, adminPasswordHash string, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		issuer:            issuer,
		passwords:         passwords,
		adminEmail:        domain.NormalizeEmail(adminEmail),
		adminPasswordHash: adminPasswordHash,
		jwtExpiry:         jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || s.adminPasswordHash == "" {
		return "", domain.ErrUnauthorized
	}
	// Both failure paths cost one bcrypt comparison.
	pwErr := s.passwords.Compare(s.adminPasswordHash, password)
	if domain.NormalizeEmail(email) != s.adminEmail || pwErr != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(s.adminEmail, s.adminEmail, []string{domain.RoleAdmin}, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
