package cacheinfra

import (
	"fmt"
	"reflect"
	"sync"
)

// shallowStore keys entries by Go equality. Pointers compare by identity and
// primitive values by value.
type shallowStore struct {
	mu      sync.Mutex
	entries map[any]*entry
	policy  Policy
}

func newShallowStore(policy Policy) *shallowStore {
	return &shallowStore{
		entries: make(map[any]*entry),
		policy:  policy,
	}
}

// checkComparable guards the map against keys that would panic on hashing.
func checkComparable(key any) error {
	if key == nil {
		return nil
	}
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Errorf("%w: %T", ErrUnhashableKey, key)
	}
	return nil
}

func (s *shallowStore) Lookup(key any) (any, Outcome, error) {
	if err := checkComparable(key); err != nil {
		return nil, Miss, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, Miss, nil
	}
	if outcome := s.policy.outcome(e); outcome != Hit {
		return nil, outcome, nil
	}
	return e.value, Hit, nil
}

func (s *shallowStore) Put(key, value any) error {
	if err := checkComparable(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = s.policy.newEntry(value)
	s.mu.Unlock()
	return nil
}

func (s *shallowStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	clear(s.entries)
	return n
}

func (s *shallowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ Store = (*shallowStore)(nil)
