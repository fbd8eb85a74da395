package journal

import (
	"slices"
	"sync"
)

// eventLog keeps the latest events in a fixed window.
// Older events are overwritten and counted as dropped.
type eventLog struct {
	mu      sync.RWMutex
	events  []Event
	next    int
	full    bool
	dropped uint64
}

func newEventLog(capacity int) *eventLog {
	if capacity <= 0 {
		panic("journal: capacity must be greater than 0")
	}
	return &eventLog{events: make([]Event, capacity)}
}

func (l *eventLog) append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.full {
		l.dropped++
	}
	l.events[l.next] = e
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}
}

func (l *eventLog) len() int {
	if l.full {
		return len(l.events)
	}
	return l.next
}

// last returns up to n of the newest events matching keep, oldest first.
// A nil keep matches every event. A non-positive n returns nil.
func (l *eventLog) last(n int, keep func(Event) bool) []Event {
	if n <= 0 {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.len()
	out := make([]Event, 0, min(n, size))
	for i := 1; i <= size && len(out) < n; i++ {
		e := l.events[(l.next-i+len(l.events))%len(l.events)]
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return out
}

func (l *eventLog) droppedCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dropped
}
