package journal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// WaitTimeout bounds how long a Recorder waits for events.
var WaitTimeout = time.Second

// Recorder keeps the events of a subscription for assertions in tests.
type Recorder struct {
	t      testing.TB
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	events []Event
}

// Collect subscribes and records events until Stop is called or the test ends.
func Collect(t testing.TB, subscribe func(context.Context) <-chan Event) *Recorder {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	r := &Recorder{t: t, cancel: cancel, done: make(chan struct{})}
	t.Cleanup(cancel)

	ch := subscribe(ctx)
	go func() {
		defer close(r.done)
		for e := range ch {
			r.mu.Lock()
			r.events = append(r.events, e)
			r.mu.Unlock()
		}
	}()
	return r
}

// Wait blocks until n events are recorded and returns all recorded events.
func (r *Recorder) Wait(n int) []Event {
	r.t.Helper()
	return r.WaitFor(n, nil)
}

// WaitFor blocks until n recorded events match keep and returns the matching ones.
// The test fails after WaitTimeout.
func (r *Recorder) WaitFor(n int, keep func(Event) bool) []Event {
	r.t.Helper()
	var matched []Event
	assert.Eventually(r.t, func() bool {
		matched = r.matching(keep)
		return len(matched) >= n
	}, WaitTimeout, time.Millisecond, "waiting for %d events", n)
	return matched
}

// Stop ends the subscription and returns every recorded event.
func (r *Recorder) Stop() []Event {
	r.cancel()
	<-r.done
	return r.matching(nil)
}

func (r *Recorder) matching(keep func(Event) bool) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out
}
