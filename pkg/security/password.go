package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password policy for account credentials. The lower bound matches the
// binding rule on the auth request DTOs; the upper bound is bcrypt's input
// limit, beyond which trailing bytes would be silently ignored.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	ErrPasswordMismatch = errors.New("password does not match")
)

// PasswordHasher hashes credentials for storage and verifies login attempts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. An out-of-range cost falls
// back to the bcrypt default.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := checkPolicy(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports ErrPasswordMismatch for any verification failure so callers
// cannot distinguish a malformed hash from a wrong password.
func (h *bcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

func checkPolicy(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
