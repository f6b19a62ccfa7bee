package service

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/session"
)

// EventType identifies a controller event.
type EventType string

const (
	// EventLoggedOut is published whenever the session ends, by logout or
	// by expiry.
	EventLoggedOut EventType = "logged_out"
)

// Event is a state transition observed by the controller.
type Event struct {
	Type   EventType
	Reason session.ClearReason
	At     time.Time
}

// eventBuffer is the per-subscriber channel capacity.
const eventBuffer = 8

// broadcaster fans events out to subscribers without blocking the publisher.
// A subscriber whose buffer is full misses the event.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
	done   chan struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[chan Event]struct{}),
		done: make(chan struct{}),
	}
}

// subscribe returns a channel that is closed when ctx is done or the
// broadcaster is closed.
func (b *broadcaster) subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, eventBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(ch)
		case <-b.done:
		}
	}()
	return ch
}

func (b *broadcaster) publish(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for ch := range b.subs {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *broadcaster) unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for ch := range b.subs {
		close(ch)
	}
	clear(b.subs)
}
