package orchestrator

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/deskbot/internal/core"
)

type pendingBooking struct {
	userID  string
	payload core.BookingPayload
	created time.Time
}

// pendingSet holds confirmation cards awaiting the user's approval.
type pendingSet struct {
	mu    sync.Mutex
	items map[string]pendingBooking
}

func newPendingSet() *pendingSet {
	return &pendingSet{items: make(map[string]pendingBooking)}
}

func (s *pendingSet) add(userID string, payload core.BookingPayload, now time.Time) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = pendingBooking{userID: userID, payload: payload, created: now}
	return id
}

// take removes and returns the booking if it belongs to userID.
func (s *pendingSet) take(id, userID string) (pendingBooking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[id]
	if !ok || b.userID != userID {
		return pendingBooking{}, false
	}
	delete(s.items, id)
	return b, true
}

func (s *pendingSet) restore(id string, b pendingBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = b
}

func (s *pendingSet) sweep(now time.Time, idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, b := range s.items {
		if now.Sub(b.created) >= idle {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *pendingSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
