package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"devevents/internal/domain"
)

// BcryptHasher hashes and checks admin passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

var _ domain.PasswordChecker = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher using the given cost. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password, suitable for ADMIN_PASSWORD_HASH.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
