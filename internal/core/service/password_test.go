package service

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash := testPasswordHash(t)

	if !strings.HasPrefix(hash, argon2Prefix) {
		t.Errorf("hash = %q, want prefix %q", hash, argon2Prefix)
	}
	if !IsPasswordHash(hash) {
		t.Error("IsPasswordHash() should accept HashPassword output")
	}
	if !verifyPassword("1234", hash) {
		t.Error("verifyPassword() should accept the hashed password")
	}
	if verifyPassword("12345", hash) {
		t.Error("verifyPassword() should reject a different password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	b, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []string{
		"",
		"1234",
		"$argon2i$v=19$m=16384,t=2,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=16384,t=2,p=2$!!!$aGFzaA",
		"$argon2id$v=19$m=16384,t=2,p=2$c2FsdA$!!!",
	}
	for _, hash := range tests {
		if verifyPassword("1234", hash) {
			t.Errorf("verifyPassword(%q) should fail", hash)
		}
	}
}

func TestIsPasswordHash(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234", false},
		{"$argon2id$v=19$m=16384,t=2,p=2$c2FsdA$aGFzaA", true},
		{"$argon2id$only$three", false},
	}
	for _, tt := range tests {
		if got := IsPasswordHash(tt.in); got != tt.want {
			t.Errorf("IsPasswordHash(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
