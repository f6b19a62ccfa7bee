package repl

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls buf until it contains want.
func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("output never contained %q:\n%s", want, buf.String())
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

// manualScheduler fires expiry only when asked.
type manualScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, f)
	return manualTimer{}
}

func (s *manualScheduler) fireLast() {
	s.mu.Lock()
	f := s.funcs[len(s.funcs)-1]
	s.mu.Unlock()
	f()
}

type fixture struct {
	ctrl  *service.Controller
	store *session.Store
	sch   *manualScheduler
	out   *syncBuffer
}

// newFixture wires a controller with instant gateways. Nil sources succeed.
func newFixture(t *testing.T, authOutcomes, userOutcomes service.OutcomeSource) *fixture {
	t.Helper()
	if authOutcomes == nil {
		authOutcomes = service.SucceedingOutcomes()
	}
	if userOutcomes == nil {
		userOutcomes = service.SucceedingOutcomes()
	}

	sch := &manualScheduler{}
	store := session.NewStore(session.WithScheduler(sch), session.WithLogger(logger.Discard()))

	auth, err := service.NewAuthGateway(store, service.DefaultAuthConfig(),
		service.WithSleeper(service.NoSleep),
		service.WithOutcomes(authOutcomes),
		service.WithGatewayLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("NewAuthGateway() error = %v", err)
	}
	users, err := service.NewUserGateway(store, nil, 0,
		service.WithSleeper(service.NoSleep),
		service.WithOutcomes(userOutcomes),
		service.WithGatewayLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("NewUserGateway() error = %v", err)
	}
	ctrl, err := service.NewController(store, auth, users, service.WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	t.Cleanup(ctrl.Close)

	return &fixture{ctrl: ctrl, store: store, sch: sch, out: &syncBuffer{}}
}

func (f *fixture) repl(opts ...Option) *REPL {
	base := []Option{
		WithIO(strings.NewReader(""), f.out),
		WithLogger(logger.Discard()),
	}
	return New(f.ctrl, append(base, opts...)...)
}

// exec runs lines through Execute and returns the output they produced.
func (f *fixture) exec(t *testing.T, r *REPL, lines ...string) string {
	t.Helper()
	before := len(f.out.String())
	for _, l := range lines {
		if r.Execute(context.Background(), l) {
			t.Fatalf("Execute(%q) requested exit", l)
		}
	}
	return f.out.String()[before:]
}
