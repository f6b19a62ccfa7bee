package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

var (
	testHashOnce sync.Once
	testHash     string
)

// testPasswordHash hashes "1234" once per test binary.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := HashPassword("1234")
		if err != nil {
			panic(err)
		}
		testHash = h
	})
	return testHash
}

func testAuthConfig(t *testing.T) AuthConfig {
	t.Helper()
	cfg := DefaultAuthConfig()
	cfg.Password = ""
	cfg.PasswordHash = testPasswordHash(t)
	return cfg
}

// manualScheduler fires scheduled calls only when asked.
type manualScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, f)
	return manualTimer{}
}

// fireLast runs the most recently scheduled call.
func (s *manualScheduler) fireLast() {
	s.mu.Lock()
	f := s.funcs[len(s.funcs)-1]
	s.mu.Unlock()
	f()
}

// fire runs the i-th scheduled call.
func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	f := s.funcs[i]
	s.mu.Unlock()
	f()
}

func newTestStore() (*session.Store, *manualScheduler) {
	sch := &manualScheduler{}
	return session.NewStore(session.WithScheduler(sch), session.WithLogger(logger.Discard())), sch
}

// countingSleeper records calls and returns immediately.
type countingSleeper struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return ctx.Err()
}

func (s *countingSleeper) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// gateSleeper blocks each call until released.
type gateSleeper struct {
	entered chan struct{}
	release chan struct{}
}

func newGateSleeper() *gateSleeper {
	return &gateSleeper{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (g *gateSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gateSleeper) waitEntered(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("sleeper was never entered")
	}
}

// recordingRecorder captures controller measurements.
type recordingRecorder struct {
	mu       sync.Mutex
	results  map[string][]string
	rejected map[string]int
	inFlight []string
	started  int
	ended    []string
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{
		results:  make(map[string][]string),
		rejected: make(map[string]int),
	}
}

func (r *recordingRecorder) ObserveOperation(op, result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[op] = append(r.results[op], result)
}

func (r *recordingRecorder) OperationRejected(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[op]++
}

func (r *recordingRecorder) SetInFlight(op string, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := "idle"
	if busy {
		state = "busy"
	}
	r.inFlight = append(r.inFlight, op+":"+state)
}

func (r *recordingRecorder) SessionStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recordingRecorder) SessionEnded(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, reason)
}
