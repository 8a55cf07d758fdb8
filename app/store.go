package app

import (
	"sync"
)

// Store holds app-wide state. Writes are shallow merges: top level keys in
// the patch replace existing ones, nested values are not merged.
type Store struct {
	mu     sync.RWMutex
	state  map[string]any
	nextID int
	subs   map[int]func(map[string]any)
	order  []int
}

func NewStore(initial map[string]any) *Store {
	s := &Store{
		state: make(map[string]any, len(initial)),
		subs:  make(map[int]func(map[string]any)),
	}
	for k, v := range initial {
		s.state[k] = v
	}
	return s
}

// Set merges patch and notifies subscribers with the resulting snapshot.
func (s *Store) Set(patch map[string]any) {
	s.Merge(patch)

	snapshot := s.Snapshot()
	for _, fn := range s.subscribers() {
		fn(snapshot)
	}
}

// Merge merges patch without notifying subscribers.
func (s *Store) Merge(patch map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range patch {
		s.state[k] = v
	}
}

// Delete removes keys without notifying subscribers.
func (s *Store) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.state, k)
	}
}

func (s *Store) Get(key string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.state[key]; ok {
		return v
	}
	return def
}

// Snapshot returns a shallow copy of the state.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// Subscribe registers fn for Set calls. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(map[string]any)) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) subscribers() []func(map[string]any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]func(map[string]any), 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.subs[id])
	}
	return out
}
