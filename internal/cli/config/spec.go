package config

import "time"

// Config is the root configuration for loginchallenge.
type Config struct {
	Auth        AuthSection        `koanf:"auth" json:"auth" yaml:"auth"`
	Session     SessionSection     `koanf:"session" json:"session" yaml:"session"`
	Simulation  SimulationSection  `koanf:"simulation" json:"simulation" yaml:"simulation"`
	Log         LogSection         `koanf:"log" json:"log" yaml:"log"`
	Diagnostics DiagnosticsSection `koanf:"diagnostics" json:"diagnostics" yaml:"diagnostics"`
	CLI         CLISection         `koanf:"cli" json:"cli" yaml:"cli"`
}

// AuthSection configures the simulated authentication backend.
type AuthSection struct {
	// UserID is the only account that can log in.
	UserID string `koanf:"user_id" json:"user_id" yaml:"user_id"`

	// Password is the plaintext password. Ignored when PasswordHash is set.
	Password string `koanf:"password" json:"password,omitempty" yaml:"password,omitempty"`

	// PasswordHash is an Argon2id hash as printed by "loginchallenge hash-password".
	PasswordHash string `koanf:"password_hash" json:"password_hash,omitempty" yaml:"password_hash,omitempty"`

	// RateLimit is the allowed logins per second. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit" json:"rate_limit" yaml:"rate_limit"`

	// RateBurst is the limiter burst.
	RateBurst int `koanf:"rate_burst" json:"rate_burst" yaml:"rate_burst"`
}

// SessionSection configures session tokens.
type SessionSection struct {
	TTL        time.Duration `koanf:"ttl" json:"ttl" yaml:"ttl"`
	TokenBytes int           `koanf:"token_bytes" json:"token_bytes" yaml:"token_bytes"`
}

// SimulationSection configures the simulated network.
type SimulationSection struct {
	// Latency is the delay of every backend call.
	Latency time.Duration `koanf:"latency" json:"latency" yaml:"latency"`

	// Failures enables random timeouts, rate limits and system errors.
	Failures bool `koanf:"failures" json:"failures" yaml:"failures"`

	// Seed fixes the failure sequence. Zero picks a random seed.
	Seed uint64 `koanf:"seed" json:"seed" yaml:"seed"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// DiagnosticsSection configures the diagnostics HTTP server.
type DiagnosticsSection struct {
	// Addr is the listen address. Empty disables the server.
	Addr string `koanf:"addr" json:"addr" yaml:"addr"`
}

// CLISection configures the terminal front end.
type CLISection struct {
	Output      string `koanf:"output" json:"output" yaml:"output"` // table, json, yaml
	Spinner     bool   `koanf:"spinner" json:"spinner" yaml:"spinner"`
	HistoryFile string `koanf:"history_file" json:"history_file" yaml:"history_file"`
}
