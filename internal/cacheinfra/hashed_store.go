package cacheinfra

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// hashedStore narrows deep-equality lookups to a bucket chosen by the xxhash
// of the key's canonical form. Inside a bucket the equality predicate still
// decides, so replacement semantics match deepStore.
type hashedStore struct {
	mu        sync.Mutex
	buckets   map[uint64][]keyedEntry
	size      int
	policy    Policy
	equal     func(a, b any) bool
	canonical func(v any) string
}

func newHashedStore(policy Policy, equal func(a, b any) bool, canonical func(v any) string) *hashedStore {
	return &hashedStore{
		buckets:   make(map[uint64][]keyedEntry),
		policy:    policy,
		equal:     equal,
		canonical: canonical,
	}
}

func (s *hashedStore) sum(key any) uint64 {
	return xxhash.Sum64String(s.canonical(key))
}

func (s *hashedStore) Lookup(key any) (any, Outcome, error) {
	h := s.sum(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ke := range s.buckets[h] {
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

func (s *hashedStore) Put(key, value any) error {
	h := s.sum(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[h]
	before := len(bucket)
	bucket = removeEquivalent(bucket, key, s.equal)
	bucket = append(bucket, keyedEntry{key: key, entry: s.policy.newEntry(value)})
	s.buckets[h] = bucket
	s.size += len(bucket) - before
	return nil
}

func (s *hashedStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.size
	clear(s.buckets)
	s.size = 0
	return n
}

func (s *hashedStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

var _ Store = (*hashedStore)(nil)
