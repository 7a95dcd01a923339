package cache

import (
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// TagRegistry maps tag strings to the stores that were ever associated with
// them, so groups of stores can be cleared without references to their owners.
//
// Entries only accumulate: clearing a tag empties its stores but keeps them
// registered, so values stored later are cleared by the next invalidation.
type TagRegistry struct {
	tags *xsync.MapOf[string, *tagSet]
}

// tagSet is an insertion-ordered set of stores.
type tagSet struct {
	mu     sync.Mutex
	stores []Store
	index  map[Store]struct{}
}

func newTagSet() *tagSet {
	return &tagSet{index: make(map[Store]struct{})}
}

func (s *tagSet) add(store Store) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[store]; ok {
		return false
	}
	s.index[store] = struct{}{}
	s.stores = append(s.stores, store)
	return true
}

func (s *tagSet) snapshot() []Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Store(nil), s.stores...)
}

func (s *tagSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// NewTagRegistry creates an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{tags: xsync.NewMapOf[string, *tagSet]()}
}

var defaultTagRegistry = NewTagRegistry()

// DefaultTagRegistry returns the process-wide registry used by members that
// are not given one explicitly. It lives for the whole process.
func DefaultTagRegistry() *TagRegistry {
	return defaultTagRegistry
}

// Register associates store with tag. Registering the same pair again is a
// no-op; the return value reports whether the pair was new.
func (r *TagRegistry) Register(tag string, store Store) bool {
	if store == nil {
		return false
	}
	set, _ := r.tags.LoadOrCompute(tag, newTagSet)
	return set.add(store)
}

// ClearTags clears every store registered under any of tags and returns the
// number of distinct stores cleared. A store reachable through several of the
// tags is cleared and counted once. Unknown tags are ignored.
func (r *TagRegistry) ClearTags(tags ...string) int {
	if len(tags) == 0 {
		return 0
	}

	seen := make(map[Store]struct{})
	for _, tag := range tags {
		set, ok := r.tags.Load(tag)
		if !ok {
			continue
		}
		for _, store := range set.snapshot() {
			if _, done := seen[store]; done {
				continue
			}
			seen[store] = struct{}{}
			store.Clear()
		}
	}
	return len(seen)
}

// Tags lists every tag with at least one registered store, sorted.
func (r *TagRegistry) Tags() []string {
	var tags []string
	r.tags.Range(func(tag string, set *tagSet) bool {
		if set.len() > 0 {
			tags = append(tags, tag)
		}
		return true
	})
	sort.Strings(tags)
	return tags
}

// StoreCount returns how many stores are registered under tag.
func (r *TagRegistry) StoreCount(tag string) int {
	set, ok := r.tags.Load(tag)
	if !ok {
		return 0
	}
	return set.len()
}
