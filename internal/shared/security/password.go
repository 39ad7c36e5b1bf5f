package security

import (
	"errors"
	"fmt"

	"opshub/internal/shared/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password digests.
const BcryptCost = 10

// MaxPasswordBytes is bcrypt's input limit, counted in bytes, not characters.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = apperrors.BadRequest("password must be at most 72 bytes")

// PasswordHasher turns plaintext passwords into salted digests and checks them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: BcryptCost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify is constant-time in the digest comparison. An empty digest never matches.
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
