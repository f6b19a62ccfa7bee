package domain

import (
	"time"

	"github.com/yndnr/login-challenge-go/pkg/token"
)

const (
	// SessionTokenBytes is the size of a simulated session token.
	SessionTokenBytes = 10000

	// SessionTTL is how long a token lives after creation.
	SessionTTL = 30 * time.Second

	// FingerprintPrefix marks token fingerprints in logs and status output.
	FingerprintPrefix = "lcfp_"
)

// SessionToken is the opaque proof of authentication.
//
// The raw bytes never leave the token; callers see only the fingerprint.
type SessionToken struct {
	value    []byte
	subject  string
	issuedAt time.Time
}

// NewSessionToken generates a token of size random bytes for subject.
func NewSessionToken(subject string, size int) (*SessionToken, error) {
	if subject == "" {
		return nil, ErrInvalidArgument.WithDetails("token subject is required")
	}
	if size <= 0 {
		return nil, ErrInvalidArgument.WithDetails("token size must be positive")
	}
	b, err := token.GenerateBytes(size)
	if err != nil {
		return nil, ErrSystemFault.WithCause(err)
	}
	return &SessionToken{
		value:    b,
		subject:  subject,
		issuedAt: time.Now(),
	}, nil
}

// Subject returns the user id the token was issued for.
func (t *SessionToken) Subject() string {
	return t.subject
}

// IssuedAt returns the creation time.
func (t *SessionToken) IssuedAt() time.Time {
	return t.issuedAt
}

// Len returns the token size in bytes.
func (t *SessionToken) Len() int {
	return len(t.value)
}

// Fingerprint returns a short, non-reversible identifier safe for logging.
func (t *SessionToken) Fingerprint() string {
	return FingerprintPrefix + token.Fingerprint(t.value)[:16]
}

// Matches reports whether other carries the same bytes, in constant time.
func (t *SessionToken) Matches(other *SessionToken) bool {
	if t == nil || other == nil {
		return false
	}
	return token.Equal(t.value, other.value)
}
