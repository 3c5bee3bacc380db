package abbrev

import (
	"sync"
	"sync/atomic"
)

// Store publishes the current table to readers on the editing path.
//
// Readers call Table once per keystroke and use the returned table for
// the whole expansion; publishers replace the table wholesale with Swap or
// edit a private copy with Update. A published table is never mutated.
type Store struct {
	current atomic.Pointer[Table]

	publishMu sync.Mutex // serialises publishing and notification

	mu        sync.Mutex // guards listeners
	listeners []func(*Table)
}

// NewStore creates a store holding t, or an empty table if t is nil.
func NewStore(t *Table) *Store {
	if t == nil {
		t = NewTable()
	}
	s := &Store{}
	s.current.Store(t)
	return s
}

// Table returns the current table. Callers must not mutate it.
func (s *Store) Table() *Table {
	return s.current.Load()
}

// Swap publishes t and returns the previous table.
func (s *Store) Swap(t *Table) *Table {
	if t == nil {
		t = NewTable()
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	old := s.current.Swap(t)
	s.notify(t)
	return old
}

// Update applies fn to a copy of the current table and publishes the copy.
func (s *Store) Update(fn func(t *Table)) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	next := s.current.Load().Clone()
	fn(next)
	s.current.Store(next)
	s.notify(next)
}

func (s *Store) notify(t *Table) {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(t)
	}
}

// Insert publishes a copy of the current table with abbr added.
func (s *Store) Insert(abbr, expansion string) {
	s.Update(func(t *Table) { t.Insert(abbr, expansion) })
}

// Remove publishes a copy of the current table without abbr.
func (s *Store) Remove(abbr string) {
	s.Update(func(t *Table) { t.Remove(abbr) })
}

// OnChange registers fn to be called with every newly published table.
// Listeners run on the publishing goroutine, in publish order, and must
// not publish to the same store.
func (s *Store) OnChange(fn func(*Table)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
