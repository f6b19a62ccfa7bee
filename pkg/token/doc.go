// Package token generates random token bytes and compares them through
// SHA-256 digests.
package token
