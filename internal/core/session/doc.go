// Package session holds the single authoritative session token.
//
// Store owns the token and its expiry timer. Each Set starts a new
// generation; an expiry timer only clears the generation it was started for,
// so a timer left over from a superseded token never clears a newer one.
package session
