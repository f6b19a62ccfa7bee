package config

import (
	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// ToAuthConfig maps the auth, session and simulation sections onto
// service.AuthConfig.
func ToAuthConfig(cfg *Config) service.AuthConfig {
	return service.AuthConfig{
		UserID:       cfg.Auth.UserID,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
		Latency:      cfg.Simulation.Latency,
		TokenBytes:   cfg.Session.TokenBytes,
		RateLimit:    cfg.Auth.RateLimit,
		RateBurst:    cfg.Auth.RateBurst,
	}
}

// ToOutcomes returns the outcome source selected by simulation.failures.
func ToOutcomes(cfg *Config) service.OutcomeSource {
	if !cfg.Simulation.Failures {
		return service.SucceedingOutcomes()
	}
	return service.NewRandomOutcomes(cfg.Simulation.Seed)
}

// ToLoggerConfig maps the log section onto logger.Config.
func ToLoggerConfig(cfg *Config) logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format
	return lc
}
