// Package timeline holds the event store for the flight duty engine.
// The store is the single owner of all duty and rest intervals; the service
// layer depends on the Store interface, not the concrete implementation,
// which allows it to be unit-tested with a mock.
//
// The product keeps no server-side persistence, so the only implementation
// is in-memory. All queries return copies: a caller can never mutate stored
// state except through Add/Update/Remove.
package timeline

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// Store defines the timeline operations the service layer depends on.
type Store interface {
	// Add inserts an event. The caller assigns the ID.
	Add(event domain.Event)

	// Get retrieves an event by ID. Returns domain.ErrNotFound if absent.
	Get(id uuid.UUID) (domain.Event, error)

	// Update applies mutate to the stored event with the given ID.
	// Returns domain.ErrNotFound if absent.
	Update(id uuid.UUID, mutate func(*domain.Event)) (domain.Event, error)

	// Remove deletes an event by ID. Returns domain.ErrNotFound if absent.
	Remove(id uuid.UUID) error

	// RemoveWhere deletes every event matching pred and returns how many
	// were removed.
	RemoveWhere(pred func(domain.Event) bool) int

	// List returns a snapshot of all events sorted by start then ID.
	List() []domain.Event

	// Overlapping returns events intersecting the half-open range
	// [start, end), optionally filtered by kind ("" means both kinds).
	Overlapping(start, end time.Time, kind domain.EventKind) []domain.Event

	// Within returns events fully contained in the closed range
	// [start, end], optionally filtered by kind.
	Within(start, end time.Time, kind domain.EventKind) []domain.Event
}

// memStore is the in-memory Store. A mutex serializes mutations so that
// each commit (validate → add → rest/LNR synthesis) observes a consistent
// timeline even behind a concurrent HTTP listener.
type memStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]domain.Event
}

// New constructs an empty in-memory Store.
func New() Store {
	return &memStore{events: make(map[uuid.UUID]domain.Event)}
}

func (s *memStore) Add(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
}

func (s *memStore) Get(id uuid.UUID) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, nil
}

func (s *memStore) Update(id uuid.UUID, mutate func(*domain.Event)) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrNotFound
	}
	mutate(&e)
	e.ID = id // identifiers are immutable once assigned
	s.events[id] = e
	return e, nil
}

func (s *memStore) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *memStore) RemoveWhere(pred func(domain.Event) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.events {
		if pred(e) {
			delete(s.events, id)
			removed++
		}
	}
	return removed
}

func (s *memStore) List() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(domain.Event) bool { return true })
}

func (s *memStore) Overlapping(start, end time.Time, kind domain.EventKind) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(e domain.Event) bool {
		return matchKind(e, kind) && e.OverlapsRange(start, end)
	})
}

func (s *memStore) Within(start, end time.Time, kind domain.EventKind) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(e domain.Event) bool {
		return matchKind(e, kind) && e.Within(start, end)
	})
}

// snapshot copies matching events into a freshly sorted slice. Sorting by
// start then ID keeps iteration deterministic for the UI; overlap
// correctness never depends on order.
func (s *memStore) snapshot(pred func(domain.Event) bool) []domain.Event {
	out := make([]domain.Event, 0)
	for _, e := range s.events {
		if pred(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func matchKind(e domain.Event, kind domain.EventKind) bool {
	return kind == "" || e.Kind == kind
}
