package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/login-challenge-go/internal/core/service"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifySession(&cfg.Session); err != nil {
		return err
	}
	if cfg.Simulation.Latency < 0 {
		return errors.New("simulation.latency must not be negative")
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if addr := cfg.Diagnostics.Addr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("diagnostics.addr %q: %w", addr, err)
		}
	}
	return verifyCLI(&cfg.CLI)
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.UserID == "" {
		return errors.New("auth.user_id is required")
	}
	if cfg.PasswordHash == "" && cfg.Password == "" {
		return errors.New("auth.password or auth.password_hash is required")
	}
	if cfg.PasswordHash != "" && !service.IsPasswordHash(cfg.PasswordHash) {
		return errors.New("auth.password_hash must be an argon2id hash")
	}
	if cfg.RateLimit < 0 {
		return errors.New("auth.rate_limit must not be negative")
	}
	if cfg.RateBurst < 0 {
		return errors.New("auth.rate_burst must not be negative")
	}
	return nil
}

func verifySession(cfg *SessionSection) error {
	if cfg.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if cfg.TokenBytes < 1 {
		return errors.New("session.token_bytes must be at least 1")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}

func verifyCLI(cfg *CLISection) error {
	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("cli.output %q is not one of table, json, yaml", cfg.Output)
	}
	return nil
}
