package history

import (
	"sync"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
)

const DefaultSize = 4

type session struct {
	mu      sync.Mutex
	turns   []core.Turn
	touched time.Time
	// dead is set under mu once the session is unlinked from the map.
	dead bool
}

// History keeps the last size turns per identity in memory. It is not
// persisted; a restart starts every conversation fresh.
type History struct {
	size int
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{
		size:     size,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Append adds turn and drops the oldest turns beyond the size bound.
func (h *History) Append(id string, turn core.Turn) {
	s := h.lock(id)
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
	if over := len(s.turns) - h.size; over > 0 {
		// copy so the dropped prefix can be collected
		s.turns = append([]core.Turn(nil), s.turns[over:]...)
	}
	s.touched = h.now()
}

// Get returns a copy of the stored window, oldest first.
func (h *History) Get(id string) []core.Turn {
	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead {
		return nil
	}
	out := make([]core.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (h *History) Clear(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		s.mu.Lock()
		s.dead = true
		s.mu.Unlock()
		delete(h.sessions, id)
	}
}

func (h *History) Size() int {
	return h.size
}

// Sweep forgets sessions untouched for idle and returns how many went.
func (h *History) Sweep(now time.Time, idle time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for id, s := range h.sessions {
		s.mu.Lock()
		if now.Sub(s.touched) >= idle {
			s.dead = true
			delete(h.sessions, id)
			removed++
		}
		s.mu.Unlock()
	}
	return removed
}

// lock returns the live session for id with its mutex held, retrying when
// the looked-up session was swept or cleared before it could be locked.
func (h *History) lock(id string) *session {
	for {
		s := h.get(id)
		s.mu.Lock()
		if !s.dead {
			return s
		}
		s.mu.Unlock()
	}
}

func (h *History) get(id string) *session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		s = &session{}
		h.sessions[id] = s
	}
	return s
}
