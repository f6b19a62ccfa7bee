package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

// Default configuration values.
const (
	DefaultUserID   = "koher"
	DefaultPassword = "1234"

	DefaultSessionTTL = domain.SessionTTL
	DefaultTokenBytes = domain.SessionTokenBytes

	DefaultLatency = 2 * time.Second

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	DefaultOutput = "table"
)

// DefaultHistoryFile returns the default REPL history path.
func DefaultHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".loginchallenge", "history")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Auth: AuthSection{
			UserID:   DefaultUserID,
			Password: DefaultPassword,
		},
		Session: SessionSection{
			TTL:        DefaultSessionTTL,
			TokenBytes: DefaultTokenBytes,
		},
		Simulation: SimulationSection{
			Latency:  DefaultLatency,
			Failures: true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		CLI: CLISection{
			Output:      DefaultOutput,
			Spinner:     true,
			HistoryFile: DefaultHistoryFile(),
		},
	}
}

// DefaultMap returns Default() keyed by dotted koanf path.
func DefaultMap() map[string]any {
	cfg := Default()
	return map[string]any{
		"auth.user_id":        cfg.Auth.UserID,
		"auth.password":       cfg.Auth.Password,
		"auth.password_hash":  cfg.Auth.PasswordHash,
		"auth.rate_limit":     cfg.Auth.RateLimit,
		"auth.rate_burst":     cfg.Auth.RateBurst,
		"session.ttl":         cfg.Session.TTL,
		"session.token_bytes": cfg.Session.TokenBytes,
		"simulation.latency":  cfg.Simulation.Latency,
		"simulation.failures": cfg.Simulation.Failures,
		"simulation.seed":     cfg.Simulation.Seed,
		"log.level":           cfg.Log.Level,
		"log.format":          cfg.Log.Format,
		"diagnostics.addr":    cfg.Diagnostics.Addr,
		"cli.output":          cfg.CLI.Output,
		"cli.spinner":         cfg.CLI.Spinner,
		"cli.history_file":    cfg.CLI.HistoryFile,
	}
}
