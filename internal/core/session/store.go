package session

import (
	"sync"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// ClearReason tells listeners why the token went away.
type ClearReason string

const (
	// ReasonLogout is an explicit Clear.
	ReasonLogout ClearReason = "logout"
	// ReasonExpired is an expiry timer firing.
	ReasonExpired ClearReason = "expired"
)

// Store is the single holder of the current session token.
//
// Only Set and Clear mutate the token. Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	token     *domain.SessionToken
	gen       uint64
	timer     Timer
	listeners []func(ClearReason)

	ttl       time.Duration
	scheduler Scheduler
	log       logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithScheduler sets the scheduler used for expiry timers.
func WithScheduler(sch Scheduler) Option {
	return func(s *Store) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:       domain.SessionTTL,
		scheduler: SystemScheduler{},
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session_store")
	return s
}

// TTL returns the configured token lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Set replaces the current token and restarts the expiry timer for it.
// It returns the generation assigned to tok.
func (s *Store) Set(tok *domain.SessionToken) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.gen++
	gen := s.gen
	s.token = tok
	s.timer = s.scheduler.AfterFunc(s.ttl, func() { s.expire(gen) })

	s.log.Debug("session token set",
		"session", tok.Fingerprint(),
		"generation", gen,
		"ttl", s.ttl.String())
	return gen
}

// Clear drops the token and cancels its expiry timer. It is idempotent and
// reports whether a token was present.
func (s *Store) Clear() bool {
	s.mu.Lock()
	s.stopTimerLocked()
	s.gen++
	had := s.token != nil
	s.token = nil
	listeners := s.listeners
	s.mu.Unlock()

	if had {
		s.log.Debug("session token cleared")
		notify(listeners, ReasonLogout)
	}
	return had
}

// Current returns the current token, if any.
func (s *Store) Current() (*domain.SessionToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != nil
}

// Generation returns the current generation. It changes on every Set and Clear.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// OnClear registers fn to run, outside the store lock, every time a present
// token is dropped by Clear or by expiry.
func (s *Store) OnClear(fn func(ClearReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners[:len(s.listeners):len(s.listeners)], fn)
}

// Close stops the pending expiry timer without clearing the token.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// expire clears the token only if gen is still the current generation.
func (s *Store) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.token == nil {
		s.mu.Unlock()
		s.log.Debug("stale expiry ignored", "generation", gen)
		return
	}
	fp := s.token.Fingerprint()
	s.token = nil
	s.timer = nil
	s.gen++
	listeners := s.listeners
	s.mu.Unlock()

	s.log.Info("session expired", "session", fp, "generation", gen)
	notify(listeners, ReasonExpired)
}

func (s *Store) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func notify(listeners []func(ClearReason), reason ClearReason) {
	for _, fn := range listeners {
		fn(reason)
	}
}
