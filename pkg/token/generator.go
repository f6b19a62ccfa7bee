package token

import (
	"crypto/rand"
	"errors"
)

// ErrInvalidLength is returned for a non-positive length.
var ErrInvalidLength = errors.New("token: length must be positive")

// GenerateBytes generates length cryptographically secure random bytes.
func GenerateBytes(length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
