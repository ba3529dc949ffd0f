package stats

import "sync"

// Store maps host addresses to their statistics. Entries are created once by
// NewStore and only mutated in place afterwards.
type Store struct {
	mu      sync.RWMutex
	kind    Kind
	order   []string
	entries map[string]*Stats
}

// NewStore creates a store with an empty entry of the given kind for every host.
// Duplicate addresses share one entry.
func NewStore(kind Kind, hosts []string) *Store {
	s := &Store{
		kind:    kind,
		entries: make(map[string]*Stats, len(hosts)),
	}
	for _, h := range hosts {
		if _, ok := s.entries[h]; ok {
			continue
		}
		st := New(kind)
		s.entries[h] = &st
		s.order = append(s.order, h)
	}
	return s
}

// Kind returns the probe kind shared by all entries.
func (s *Store) Kind() Kind {
	return s.kind
}

// Hosts returns the host addresses in creation order.
func (s *Store) Hosts() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Apply runs fn on the host's entry under the write lock. It returns false
// when the host is unknown. fn must not block.
func (s *Store) Apply(host string, fn func(*Stats)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.entries[host]
	if !ok {
		return false
	}
	fn(st)
	return true
}

// Record applies one outcome to the host's entry.
func (s *Store) Record(host string, o Outcome) bool {
	return s.Apply(host, func(st *Stats) {
		st.Record(o)
	})
}

// Get returns a copy of the host's entry.
func (s *Store) Get(host string) (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.entries[host]
	if !ok {
		return Stats{}, false
	}
	return st.Clone(), true
}

// Snapshot returns a deep copy of every entry.
func (s *Store) Snapshot() map[string]Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Stats, len(s.entries))
	for h, st := range s.entries {
		out[h] = st.Clone()
	}
	return out
}
