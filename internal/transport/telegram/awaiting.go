package telegram

import (
	"sync"
	"time"
)

// awaiting remembers chats whose next text is feedback for the operator.
type awaiting struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	chats map[string]time.Time
}

func newAwaiting(ttl time.Duration) *awaiting {
	return &awaiting{ttl: ttl, now: time.Now, chats: make(map[string]time.Time)}
}

func (a *awaiting) set(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chats[id] = a.now()
}

// take clears the mark and reports whether it was set and fresh.
func (a *awaiting) take(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	since, ok := a.chats[id]
	if !ok {
		return false
	}
	delete(a.chats, id)
	return a.now().Sub(since) < a.ttl
}

func (a *awaiting) cancel(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.chats, id)
}
