package logger

import (
	"log/slog"
	"strings"
)

// redactedValue replaces sensitive strings.
const redactedValue = "***REDACTED***"

// hashPrefix marks Argon2id password hashes, which are masked wherever
// they appear.
const hashPrefix = "$argon2id$"

// Key fragments whose string values are never logged.
var sensitiveKeys = []string{
	"password",
	"passwd",
	"secret",
	"credential",
	"bearer",
	"token",
}

// redactSensitive masks password hashes and the values of sensitive keys.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if IsSensitiveValue(v) {
			return slog.String(a.Key, RedactString(v))
		}
		if v != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			masked[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}
	return a
}

// RedactString masks a password hash, keeping its prefix and the first and
// last three characters of the rest. Other values are returned unchanged.
func RedactString(value string) string {
	if !IsSensitiveValue(value) {
		return value
	}
	body := value[len(hashPrefix):]
	if len(body) > 6 {
		return hashPrefix + body[:3] + "..." + body[len(body)-3:]
	}
	return hashPrefix + "***"
}

// IsSensitiveKey reports whether key names secret material.
func IsSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, fragment := range sensitiveKeys {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether value is a password hash.
func IsSensitiveValue(value string) bool {
	return strings.HasPrefix(value, hashPrefix)
}
