package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newJSONTestLogger(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return newJSON(t, "info", &buf), &buf
}

func TestRedactSensitive_PasswordHashValue(t *testing.T) {
	l, buf := newJSONTestLogger(t)

	hash := "$argon2id$v=19$m=16384,t=2,p=2$c2FsdHNhbHQ$aGFzaGhhc2g"
	l.Info("auth configured", "stored", hash)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	got, ok := logEntry["stored"].(string)
	if !ok {
		t.Fatal("Expected stored field in log")
	}
	if got != "$argon2id$v=1...c2g" {
		t.Errorf("hash mask format incorrect, got: %s", got)
	}
}

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	l, buf := newJSONTestLogger(t)

	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{"password", "1234", redactedValue},
		{"user_password", "hunter2", redactedValue},
		{"client_secret", "abc", redactedValue},
		{"Credential", "xyz", redactedValue},
		{"session_token", "lctk_raw", redactedValue},
		{"password", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			buf.Reset()
			l.Info("test", tt.key, tt.value)

			var logEntry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse JSON log: %v", err)
			}

			if got := logEntry[tt.key]; got != tt.expected {
				t.Errorf("%s = %v, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestRedactSensitive_NormalValues(t *testing.T) {
	l, buf := newJSONTestLogger(t)

	l.Info("login succeeded", "user_id", "koher", "session", "lcfp_0123456789abcdef")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["user_id"] != "koher" {
		t.Errorf("user_id = %v, want koher", logEntry["user_id"])
	}
	if logEntry["session"] != "lcfp_0123456789abcdef" {
		t.Errorf("session = %v, want unchanged fingerprint", logEntry["session"])
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	attr := slog.Group("auth", slog.String("password", "1234"), slog.String("id", "koher"))

	got := redactSensitive(attr)
	group := got.Value.Group()
	if len(group) != 2 {
		t.Fatalf("group has %d attrs, want 2", len(group))
	}
	for _, a := range group {
		switch a.Key {
		case "password":
			if a.Value.String() != redactedValue {
				t.Errorf("password = %q, want redacted", a.Value.String())
			}
		case "id":
			if a.Value.String() != "koher" {
				t.Errorf("id = %q, want koher", a.Value.String())
			}
		}
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$argon2id$abcdefghij", "$argon2id$abc...hij"},
		{"$argon2id$abc", "$argon2id$***"},
		{"koher", "koher"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RedactString(tt.input); got != tt.expected {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"PASSWORD", true},
		{"password_hash", true},
		{"secret", true},
		{"credentials", true},
		{"bearer_token", true},
		{"user_id", false},
		{"session", false},
		{"kind", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestIsSensitiveValue(t *testing.T) {
	if !IsSensitiveValue("$argon2id$v=19$...") {
		t.Error("argon2id hash should be sensitive")
	}
	if IsSensitiveValue("koher") {
		t.Error("plain id should not be sensitive")
	}
}
