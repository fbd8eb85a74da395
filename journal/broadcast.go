package journal

import (
	"context"
	"sync"
)

// DefaultSubscriberBuffer is the channel buffer of a subscription.
const DefaultSubscriberBuffer = 100

// broadcaster hands recorded events to live subscribers.
// A subscriber with a full channel misses the event; Record never blocks the runner.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	buffer int
	closed bool
}

func newBroadcaster(buffer int) *broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &broadcaster{
		subs:   make(map[chan Event]struct{}),
		buffer: buffer,
	}
}

func (b *broadcaster) subscribe(ctx context.Context) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	context.AfterFunc(ctx, func() { b.unsubscribe(ch) })
	return ch
}

func (b *broadcaster) unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// publish returns the number of subscribers that missed e.
func (b *broadcaster) publish(e Event) (missed int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			missed++
		}
	}
	return missed
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
