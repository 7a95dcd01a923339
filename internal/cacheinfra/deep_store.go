package cacheinfra

import "sync"

type keyedEntry struct {
	key any
	*entry
}

// deepStore keeps entries in insertion order and finds keys with a linear
// scan using the injected equality predicate. Each structural shape maps to
// at most one entry; a Put replaces any equivalent key.
type deepStore struct {
	mu      sync.Mutex
	entries []keyedEntry
	policy  Policy
	equal   func(a, b any) bool
}

func newDeepStore(policy Policy, equal func(a, b any) bool) *deepStore {
	return &deepStore{policy: policy, equal: equal}
}

func (s *deepStore) Lookup(key any) (any, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ke := range s.entries {
		if !s.equal(ke.key, key) {
			continue
		}
		if outcome := s.policy.outcome(ke.entry); outcome != Hit {
			return nil, outcome, nil
		}
		return ke.value, Hit, nil
	}
	return nil, Miss, nil
}

func (s *deepStore) Put(key, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = removeEquivalent(s.entries, key, s.equal)
	s.entries = append(s.entries, keyedEntry{key: key, entry: s.policy.newEntry(value)})
	return nil
}

func (s *deepStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = nil
	return n
}

func (s *deepStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// removeEquivalent filters entries in place, dropping every key equal to key.
func removeEquivalent(entries []keyedEntry, key any, equal func(a, b any) bool) []keyedEntry {
	kept := entries[:0]
	for _, ke := range entries {
		if !equal(ke.key, key) {
			kept = append(kept, ke)
		}
	}
	// release references held past the new length
	for i := len(kept); i < len(entries); i++ {
		entries[i] = keyedEntry{}
	}
	return kept
}

var _ Store = (*deepStore)(nil)
