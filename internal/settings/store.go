package settings

import "sync/atomic"

// Store publishes the active Snapshot. Readers never block; Register replaces
// the whole snapshot in one atomic step.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a Store with snap registered.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.Register(snap)
	return s
}

// Register makes snap the active snapshot.
func (s *Store) Register(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the active snapshot, or nil if none was registered.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// String reads key from the current snapshot.
func (s *Store) String(key string) (string, error) {
	snap := s.Current()
	if snap == nil {
		return "", ErrNotRegistered
	}
	return snap.String(key)
}

// Bool reads key from the current snapshot as a boolean.
func (s *Store) Bool(key string) (bool, error) {
	snap := s.Current()
	if snap == nil {
		return false, ErrNotRegistered
	}
	return snap.Bool(key)
}
