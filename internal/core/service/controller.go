package service

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/core/guard"
	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// Operation names used by the controller guard and in metrics.
const (
	OpLogin  = "login"
	OpLogout = "logout"
	OpReload = "reload"
)

// Operation results that are not error kinds.
const (
	ResultSuccess = "success"
	ResultBusy    = "busy"
)

// Authenticator is the login backend used by Controller.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) error
	Logout(ctx context.Context)
}

// UserSource is the profile backend used by Controller.
type UserSource interface {
	CurrentUser(ctx context.Context) (domain.User, error)
}

// Recorder receives controller measurements.
type Recorder interface {
	ObserveOperation(op, result string, d time.Duration)
	OperationRejected(op string)
	SetInFlight(op string, busy bool)
	SessionStarted()
	SessionEnded(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
func (nopRecorder) OperationRejected(string)                       {}
func (nopRecorder) SetInFlight(string, bool)                       {}
func (nopRecorder) SessionStarted()                                {}
func (nopRecorder) SessionEnded(string)                            {}

// Status is a snapshot of the controller state.
type Status struct {
	Authenticated bool         `json:"authenticated" yaml:"authenticated"`
	Session       string       `json:"session,omitempty" yaml:"session,omitempty"`
	IssuedAt      *time.Time   `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	User          *domain.User `json:"user,omitempty" yaml:"user,omitempty"`
	Busy          []string     `json:"busy" yaml:"busy"`
}

// Controller orchestrates login, logout and profile reload.
//
// Each operation is single-flight: a call made while the same operation is
// running returns ErrOperationInProgress and has no side effects. Failures
// are returned as taxonomy errors. Controller is safe for concurrent use.
type Controller struct {
	auth     Authenticator
	users    UserSource
	store    *session.Store
	guard    *guard.Guard
	events   *broadcaster
	recorder Recorder
	log      logger.Logger

	mu   sync.RWMutex
	user *domain.User
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) ControllerOption {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l logger.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController creates a Controller over store and the two gateways.
func NewController(store *session.Store, auth Authenticator, users UserSource, opts ...ControllerOption) (*Controller, error) {
	if store == nil || auth == nil || users == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("store, authenticator and user source are required")
	}

	c := &Controller{
		auth:     auth,
		users:    users,
		store:    store,
		events:   newBroadcaster(),
		recorder: nopRecorder{},
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "controller")
	c.guard = guard.New(func(name string, busy bool) {
		c.recorder.SetInFlight(name, busy)
	})
	store.OnClear(c.onSessionEnd)
	return c, nil
}

// Login authenticates id and password.
func (c *Controller) Login(ctx context.Context, id, password string) error {
	return c.run(ctx, OpLogin, func(ctx context.Context) error {
		if err := c.auth.Login(ctx, domain.Credentials{ID: id, Password: password}); err != nil {
			return err
		}
		// a new session starts without a profile, even when it replaced a live one
		c.mu.Lock()
		c.user = nil
		c.mu.Unlock()
		c.recorder.SessionStarted()
		return nil
	})
}

// Logout ends the session. Only ErrOperationInProgress is ever returned.
func (c *Controller) Logout(ctx context.Context) error {
	return c.run(ctx, OpLogout, func(ctx context.Context) error {
		c.auth.Logout(ctx)
		return nil
	})
}

// LoadCurrentUser fetches the profile of the session user and caches it.
func (c *Controller) LoadCurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.run(ctx, OpReload, func(ctx context.Context) error {
		gen := c.store.Generation()
		u, err := c.users.CurrentUser(ctx)
		if err != nil {
			return err
		}

		c.mu.Lock()
		// A session that ended during the fetch must not get a cached user.
		if c.store.Generation() == gen {
			c.user = &u
		}
		c.mu.Unlock()

		user = u
		return nil
	})
	return user, err
}

// User returns the last loaded profile of the current session.
func (c *Controller) User() (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return domain.User{}, false
	}
	return *c.user, true
}

// IsBusy reports whether op is running.
func (c *Controller) IsBusy(op string) bool {
	return c.guard.IsBusy(op)
}

// Status returns a snapshot of the session and running operations.
func (c *Controller) Status() Status {
	st := Status{Busy: c.guard.Busy()}
	if tok, ok := c.store.Current(); ok {
		issued := tok.IssuedAt()
		expires := issued.Add(c.store.TTL())
		st.Authenticated = true
		st.Session = tok.Fingerprint()
		st.IssuedAt = &issued
		st.ExpiresAt = &expires
	}
	if u, ok := c.User(); ok {
		st.User = &u
	}
	return st
}

// Subscribe returns a channel of controller events. The channel is closed
// when ctx is done or the controller is closed.
func (c *Controller) Subscribe(ctx context.Context) <-chan Event {
	return c.events.subscribe(ctx)
}

// Close stops the session expiry timer and closes all subscriptions.
func (c *Controller) Close() {
	c.store.Close()
	c.events.close()
}

func (c *Controller) run(ctx context.Context, op string, fn func(context.Context) error) error {
	if !c.guard.TryAcquire(op) {
		c.recorder.OperationRejected(op)
		c.log.Debug("operation rejected", "op", op)
		return domain.ErrOperationInProgress.WithDetails(op)
	}
	defer c.guard.Release(op)

	opID := newOperationID()
	ctx = logger.WithOperationID(ctx, opID)
	log := c.log.With("op", op).WithContext(ctx)
	ctx = logger.WithLogger(ctx, log)

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		derr := domain.Classified(err)
		kind := domain.Classify(derr)
		c.recorder.ObserveOperation(op, kind.String(), elapsed)
		log.Info("operation failed",
			"kind", kind.String(),
			"code", derr.Code,
			"error", err,
			"duration", elapsed.String())
		return derr
	}

	c.recorder.ObserveOperation(op, ResultSuccess, elapsed)
	log.Debug("operation completed", "duration", elapsed.String())
	return nil
}

func (c *Controller) onSessionEnd(reason session.ClearReason) {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	c.recorder.SessionEnded(string(reason))
	n := c.events.publish(Event{Type: EventLoggedOut, Reason: reason, At: time.Now()})
	c.log.Info("session ended", "reason", string(reason), "subscribers", n)
}

func newOperationID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
