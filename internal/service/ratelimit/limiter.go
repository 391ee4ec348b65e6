package ratelimit

import (
	"sync"
	"time"
)

// window holds the admitted event times of one identity, oldest first.
type window struct {
	mu     sync.Mutex
	events []time.Time
	// dead is set under mu once Sweep has unlinked the window.
	dead bool
}

// Limiter admits at most limit events per identity within a sliding window.
// The map lock only guards lookup; each window has its own mutex.
type Limiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

func New(limit int, windowDur time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  windowDur,
		windows: make(map[string]*window),
	}
}

// Allow reports whether an event for id at now is admitted and records it if so.
// A non-positive limit disables admission control.
func (l *Limiter) Allow(id string, now time.Time) bool {
	if l.limit <= 0 {
		return true
	}

	w := l.lock(id)
	defer w.mu.Unlock()

	w.prune(now, l.window)
	if len(w.events) >= l.limit {
		return false
	}
	w.events = append(w.events, now)
	return true
}

// Sweep drops windows whose newest event is older than idle and returns how
// many were removed.
func (l *Limiter) Sweep(now time.Time, idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, w := range l.windows {
		w.mu.Lock()
		if len(w.events) == 0 || now.Sub(w.events[len(w.events)-1]) >= idle {
			w.dead = true
			delete(l.windows, id)
			removed++
		}
		w.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked identities.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *Limiter) get(id string) *window {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[id]
	if !ok {
		w = &window{}
		l.windows[id] = w
	}
	return w
}

// lock returns the live window for id with its mutex held. A window swept
// between lookup and locking is dead, so the lookup is retried.
func (l *Limiter) lock(id string) *window {
	for {
		w := l.get(id)
		w.mu.Lock()
		if !w.dead {
			return w
		}
		w.mu.Unlock()
	}
}

// prune keeps only events strictly younger than size.
func (w *window) prune(now time.Time, size time.Duration) {
	kept := w.events[:0]
	for _, t := range w.events {
		if now.Sub(t) < size {
			kept = append(kept, t)
		}
	}
	w.events = kept
}
