package service

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/core/session"
)

// AuthConfig holds configuration for AuthGateway.
type AuthConfig struct {
	// UserID is the only account id that can log in.
	UserID string

	// Password is the plaintext password. It is hashed on construction and
	// ignored when PasswordHash is set.
	Password string

	// PasswordHash is an Argon2id hash in HashPassword format.
	PasswordHash string

	// Latency is the simulated round-trip time (default: 2s).
	Latency time.Duration

	// TokenBytes is the size of issued tokens (default: 10,000).
	TokenBytes int

	// RateLimit is the allowed logins per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the limiter burst. Defaults to 1 when RateLimit is set.
	RateBurst int
}

// DefaultAuthConfig returns the demo account koher / 1234.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		UserID:     "koher",
		Password:   "1234",
		Latency:    2 * time.Second,
		TokenBytes: domain.SessionTokenBytes,
	}
}

// AuthGateway simulates the remote authentication backend.
//
// A successful login stores a fresh token in the session Store; logout clears
// it. AuthGateway never keeps a token of its own.
type AuthGateway struct {
	store        *session.Store
	userID       string
	passwordHash string
	latency      time.Duration
	tokenBytes   int
	limiter      *rate.Limiter
	opts         gatewayOptions
}

// NewAuthGateway creates an AuthGateway that writes tokens to store.
func NewAuthGateway(store *session.Store, cfg AuthConfig, opts ...GatewayOption) (*AuthGateway, error) {
	if store == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("session store is required")
	}
	if cfg.UserID == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("user id is required")
	}

	hash := cfg.PasswordHash
	switch {
	case hash != "":
		if !IsPasswordHash(hash) {
			return nil, domain.ErrInvalidArgument.WithDetails("password hash is not argon2id")
		}
	case cfg.Password != "":
		h, err := HashPassword(cfg.Password)
		if err != nil {
			return nil, domain.ErrSystemFault.WithCause(err)
		}
		hash = h
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("password or password hash is required")
	}

	if cfg.Latency < 0 {
		cfg.Latency = 0
	}
	if cfg.TokenBytes <= 0 {
		cfg.TokenBytes = domain.SessionTokenBytes
	}

	g := &AuthGateway{
		store:        store,
		userID:       cfg.UserID,
		passwordHash: hash,
		latency:      cfg.Latency,
		tokenBytes:   cfg.TokenBytes,
		opts:         buildGatewayOptions(opts),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	g.opts.log = g.opts.log.With("component", "auth_gateway")
	return g, nil
}

// Login authenticates creds and, on success, stores a new session token.
//
// Errors:
//   - ErrNetwork: the wait was interrupted or the call timed out
//   - ErrServerInternal: the backend rate limited the call
//   - ErrSystemFault: the backend failed unexpectedly
//   - ErrLoginRejected: id or password did not match
func (g *AuthGateway) Login(ctx context.Context, creds domain.Credentials) error {
	log := g.opts.log.WithContext(ctx)

	if err := g.opts.sleep(ctx, g.latency); err != nil {
		return domain.ErrNetwork.WithCause(err)
	}

	if g.limiter != nil && !g.limiter.Allow() {
		log.Debug("login throttled by limiter")
		return domain.ErrServerInternal.WithDetails("rate limit exceeded")
	}

	if outcome := g.opts.outcomes.Next(); outcome != OutcomeSuccess {
		log.Debug("simulated login failure", "outcome", outcome.String())
		return outcome.Err()
	}

	if !g.verify(creds) {
		log.Debug("login rejected", "credentials", creds)
		return domain.ErrLoginRejected
	}

	tok, err := domain.NewSessionToken(creds.ID, g.tokenBytes)
	if err != nil {
		return err
	}
	gen := g.store.Set(tok)

	log.Debug("login accepted", "session", tok.Fingerprint(), "generation", gen)
	return nil
}

// Logout waits the latency and clears the session. It never fails; an
// interrupted wait still clears.
func (g *AuthGateway) Logout(ctx context.Context) {
	if err := g.opts.sleep(ctx, g.latency); err != nil {
		g.opts.log.WithContext(ctx).Debug("logout wait interrupted", "error", err)
	}
	g.store.Clear()
}

// verify checks both fields without short-circuiting on the id.
func (g *AuthGateway) verify(creds domain.Credentials) bool {
	idOK := subtle.ConstantTimeCompare([]byte(creds.ID), []byte(g.userID)) == 1
	pwOK := verifyPassword(creds.Password, g.passwordHash)
	return idOK && pwOK
}
