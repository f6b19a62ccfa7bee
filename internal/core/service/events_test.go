package service

import (
	"context"
	"testing"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/session"
)

func TestBroadcaster_FullBufferDrops(t *testing.T) {
	b := newBroadcaster()
	defer b.close()

	ch := b.subscribe(context.Background())
	ev := Event{Type: EventLoggedOut, Reason: session.ReasonExpired, At: time.Now()}

	for i := 0; i < eventBuffer; i++ {
		if n := b.publish(ev); n != 1 {
			t.Fatalf("publish %d delivered to %d subscribers, want 1", i, n)
		}
	}
	// Buffer is full; the publisher must not block
	if n := b.publish(ev); n != 0 {
		t.Errorf("publish on full buffer delivered %d, want 0", n)
	}

	<-ch
	if n := b.publish(ev); n != 1 {
		t.Errorf("publish after drain delivered %d, want 1", n)
	}
}

func TestBroadcaster_FanOut(t *testing.T) {
	b := newBroadcaster()
	defer b.close()

	a := b.subscribe(context.Background())
	c := b.subscribe(context.Background())

	if n := b.publish(Event{Type: EventLoggedOut, Reason: session.ReasonLogout}); n != 2 {
		t.Fatalf("publish delivered %d, want 2", n)
	}
	for _, ch := range []<-chan Event{a, c} {
		if ev := <-ch; ev.Reason != session.ReasonLogout {
			t.Errorf("event reason = %v, want logout", ev.Reason)
		}
	}
}

func TestBroadcaster_CloseIdempotent(t *testing.T) {
	b := newBroadcaster()
	ch := b.subscribe(context.Background())
	b.close()
	b.close()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
	if n := b.publish(Event{}); n != 0 {
		t.Errorf("publish after close delivered %d, want 0", n)
	}
}
