// Package guard provides per-operation single-flight admission.
//
// A Guard tracks a set of named operations. At most one invocation per name is
// admitted at a time; a second attempt while the first is running is rejected
// rather than queued. Different names never block each other.
package guard

import (
	"sort"
	"sync"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

// Observer is told about every busy/idle transition. It runs with the
// guard locked and must not call back into the Guard.
type Observer func(name string, busy bool)

// Guard is a set of busy operation names. The zero value is ready to use.
type Guard struct {
	mu       sync.Mutex
	busy     map[string]struct{}
	observer Observer
}

// New creates a Guard. observer may be nil.
func New(observer Observer) *Guard {
	return &Guard{observer: observer}
}

// TryAcquire marks name busy. It reports false if name was already busy.
func (g *Guard) TryAcquire(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[name]; ok {
		return false
	}
	if g.busy == nil {
		g.busy = make(map[string]struct{})
	}
	g.busy[name] = struct{}{}
	g.notify(name, true)
	return true
}

// Release marks name idle. Releasing an idle name is a no-op.
func (g *Guard) Release(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[name]; !ok {
		return
	}
	delete(g.busy, name)
	g.notify(name, false)
}

// notify runs under g.mu so observers see transitions in the order they
// happened.
func (g *Guard) notify(name string, busy bool) {
	if g.observer != nil {
		g.observer(name, busy)
	}
}

// IsBusy reports whether name is currently admitted.
func (g *Guard) IsBusy(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[name]
	return ok
}

// Busy returns the sorted names of all running operations.
func (g *Guard) Busy() []string {
	g.mu.Lock()
	names := make([]string, 0, len(g.busy))
	for name := range g.busy {
		names = append(names, name)
	}
	g.mu.Unlock()

	sort.Strings(names)
	return names
}

// Run executes fn while holding name. It returns ErrOperationInProgress
// without calling fn if name is already busy. name is released on every
// exit path of fn, including a panic.
func (g *Guard) Run(name string, fn func() error) error {
	if !g.TryAcquire(name) {
		return domain.ErrOperationInProgress.WithDetails(name)
	}
	defer g.Release(name)
	return fn()
}
