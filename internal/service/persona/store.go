package persona

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
)

// Store assigns each identity a random persona on first use and keeps it
// until Reset.
type Store struct {
	catalog *Catalog
	intn    func(n int) int
	now     func() time.Time

	mu       sync.Mutex
	personas map[string]*assignment
}

type assignment struct {
	persona core.Persona
	touched time.Time
}

type Option func(*Store)

// WithIntn replaces the random source, mainly for tests.
func WithIntn(intn func(n int) int) Option {
	return func(s *Store) { s.intn = intn }
}

func NewStore(catalog *Catalog, opts ...Option) *Store {
	s := &Store{
		catalog:  catalog,
		intn:     rand.IntN,
		now:      time.Now,
		personas: make(map[string]*assignment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) GetOrCreate(id string) core.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.personas[id]; ok {
		a.touched = s.now()
		return a.persona
	}

	p := core.Persona{
		Mood:      s.pick(Mood),
		Style:     s.pick(Style),
		Reasoning: s.pick(Reasoning),
	}
	s.personas[id] = &assignment{persona: p, touched: s.now()}
	return p
}

func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.personas, id)
}

// Sweep forgets personas unused for idle and returns how many went.
func (s *Store) Sweep(now time.Time, idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, a := range s.personas {
		if now.Sub(a.touched) >= idle {
			delete(s.personas, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.personas)
}

// Module resolves persona text for the prompt. Unknown labels give "".
func (s *Store) Module(cat Category, label string) string {
	return s.catalog.Module(cat, label)
}

func (s *Store) pick(cat Category) string {
	labels := s.catalog.Labels(cat)
	if len(labels) == 0 {
		return defaultLabels[cat]
	}
	return labels[s.intn(len(labels))]
}
