package config

import (
	"strings"

	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// Sanitize returns a copy of the config with password material masked,
// for display.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Auth.Password != "" {
		sanitized.Auth.Password = maskSecret(sanitized.Auth.Password)
	}
	if sanitized.Auth.PasswordHash != "" {
		sanitized.Auth.PasswordHash = logger.RedactString(sanitized.Auth.PasswordHash)
	}

	return &sanitized
}

// maskSecret keeps the first and last two characters of longer secrets.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
