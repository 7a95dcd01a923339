package memoize

import (
	"sync"

	"github.com/goliatone/go-memoize/cache"
)

// Owner is implemented by any type that embeds State. Memoized members only
// accept pointer owners, since the promoted method has a pointer receiver.
type Owner interface {
	memoState() *State
}

// State holds the memoization stores of one owner instance. Embed it by
// value in the owning struct; the zero value is ready to use. It has no
// exported fields, so encoders skip it.
//
// A copied owner starts empty: the copy notices on first use that it is not
// the State that created the stores and drops them.
//
//	type Greeter struct {
//		memoize.State
//		Prefix string
//	}
type State struct {
	mu     sync.Mutex
	self   *State
	stores map[*member]cache.Store
	tagged map[*member]struct{}
}

func (s *State) memoState() *State { return s }

// claim detaches state inherited from a copied owner. Callers hold s.mu.
func (s *State) claim() {
	if s.self == s {
		return
	}
	s.self = s
	s.stores = nil
	s.tagged = nil
}

// storeFor returns the store m uses for this owner, creating it on first use.
func (s *State) storeFor(m *member) (cache.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim()

	if store, ok := s.stores[m]; ok {
		return store, nil
	}

	store, err := cache.NewStore(m.storeConfig)
	if err != nil {
		return nil, err
	}

	if s.stores == nil {
		s.stores = make(map[*member]cache.Store)
	}
	s.stores[m] = store
	m.log().WithField("tags", m.tags).Debug("memoize: store created")

	return store, nil
}

// tag registers m's store under m's tags. It runs after the first value is
// stored, so calls that never store anything leave the registry untouched.
func (s *State) tag(m *member, store cache.Store) {
	if len(m.tags) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim()

	if _, ok := s.tagged[m]; ok {
		return
	}
	if s.stores[m] != store {
		return
	}
	if s.tagged == nil {
		s.tagged = make(map[*member]struct{})
	}
	s.tagged[m] = struct{}{}

	for _, t := range m.tags {
		m.registry.Register(t, store)
	}
}

// existing returns m's store without creating one.
func (s *State) existing(m *member) (cache.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim()

	store, ok := s.stores[m]
	return store, ok
}
