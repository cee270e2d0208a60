// Package sections holds the expanded or collapsed flag of each
// panel of a widget.
package sections

import "sync"

type ID string

const (
	Location ID = "location"
	Network  ID = "network"
	Other    ID = "other"
)

// IDs returns the panel identifiers in display order.
func IDs() []ID {
	return []ID{Location, Network, Other}
}

// Parse returns the identifier matching s and true,
// or false if s is not a known panel identifier.
func Parse(s string) (id ID, ok bool) {
	for _, id := range IDs() {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Store is safe for concurrent use.
type Store struct {
	open  map[ID]bool
	mutex sync.RWMutex
}

// New returns a store with every panel expanded.
func New() *Store {
	open := make(map[ID]bool, len(IDs()))
	for _, id := range IDs() {
		open[id] = true
	}
	return &Store{
		open: open,
	}
}

// Toggle flips the flag of the given panel only. It returns
// false and changes nothing if the identifier is unknown.
func (s *Store) Toggle(id ID) (ok bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	isOpen, ok := s.open[id]
	if !ok {
		return false
	}
	s.open[id] = !isOpen
	return true
}

func (s *Store) IsOpen(id ID) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.open[id]
}

// Snapshot returns a copy of the flags which can be used
// without holding any lock.
func (s *Store) Snapshot() (open map[ID]bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	open = make(map[ID]bool, len(s.open))
	for id, isOpen := range s.open {
		open[id] = isOpen
	}
	return open
}
