package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Fingerprint returns the hex-encoded SHA-256 digest of data.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Equal compares the SHA-256 digests of a and b in constant time, so the
// comparison time does not depend on where the inputs differ or on their
// lengths.
func Equal(a, b []byte) bool {
	da := sha256.Sum256(a)
	db := sha256.Sum256(b)
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

// MatchesFingerprint reports whether data hashes to fingerprint.
// A fingerprint that is not valid hex never matches.
func MatchesFingerprint(data []byte, fingerprint string) bool {
	want, err := hex.DecodeString(fingerprint)
	if err != nil || len(want) != sha256.Size {
		return false
	}
	sum := sha256.Sum256(data)
	return subtle.ConstantTimeCompare(sum[:], want) == 1
}
