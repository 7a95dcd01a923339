package memoize

import (
	"errors"
	"reflect"

	"github.com/apex/log"
	"github.com/goliatone/go-memoize/cache"
)

// ErrNilOwner is returned when a memoized member is invoked on a nil owner.
var ErrNilOwner = errors.New("memoize: nil owner")

const (
	kindProperty = "property"
	kindMethod   = "method"

	defaultName = "member"
)

// member is the engine shared by every memoized wrapper: it owns the
// configuration and runs the lookup/compute/store cycle for one owner at a time.
type member struct {
	name     string
	kind     string
	keyFunc  KeyFunc
	allArgs  bool
	equality cache.EqualityMode
	tags     []string

	storeConfig cache.Config
	serializer  cache.KeySerializer
	registry    *cache.TagRegistry

	logger  log.Interface
	fields  log.Fields
	metrics *instruments
}

func newMember(opts Options, kind, fallbackName string) (*member, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = defaultName
	}

	equal := opts.Equal
	if equal == nil {
		equal = cache.DeepEqual
	}
	serializer := opts.Serializer
	if serializer == nil {
		serializer = cache.NewDefaultKeySerializer()
	}
	registry := opts.Registry
	if registry == nil {
		registry = cache.DefaultTagRegistry()
	}
	var clock cache.Clock = cache.SystemClock{}
	if opts.Clock != nil {
		clock = opts.Clock
	}
	var logger log.Interface = log.Log
	if opts.Logger != nil {
		logger = opts.Logger
	}

	storeConfig := cache.Config{
		Equality:   opts.Equality,
		Expiration: opts.Expiration,
		Equal:      equal,
		Hashed:     opts.Hashed,
		Serializer: serializer,
		Clock:      clock,
	}
	if err := storeConfig.Validate(); err != nil {
		return nil, err
	}

	fields := log.Fields{
		"member": name,
		"kind":   kind,
		"mode":   opts.Equality.String(),
	}

	metrics, err := newInstruments(opts.Meter, name)
	if err != nil {
		logger.WithFields(fields).WithError(err).Warn("memoize: metrics disabled")
		metrics = noopInstruments(name)
	}

	return &member{
		name:        name,
		kind:        kind,
		keyFunc:     opts.KeyFunc,
		allArgs:     opts.AllArgs,
		equality:    opts.Equality,
		tags:        dedupeStrings(opts.Tags),
		storeConfig: storeConfig,
		serializer:  serializer,
		registry:    registry,
		logger:      logger,
		fields:      fields,
		metrics:     metrics,
	}, nil
}

func (m *member) log() *log.Entry {
	return m.logger.WithFields(m.fields)
}

// call serves one invocation. invoke runs the real computation and is only
// called on a miss; no lock is held while it runs, so it may call other
// memoized members of the same owner. Failed computations leave the store
// untouched.
func (m *member) call(owner Owner, args []any, invoke func() (any, error)) (any, error) {
	if isNil(owner) {
		return nil, ErrNilOwner
	}
	key, err := m.deriveKey(owner, args)
	if err != nil {
		m.metrics.failure(stageKey)
		return nil, err
	}

	state := owner.memoState()
	store, err := state.storeFor(m)
	if err != nil {
		return nil, err
	}

	value, outcome, err := store.Lookup(key)
	if err != nil {
		m.metrics.failure(stageStore)
		return nil, err
	}
	m.metrics.lookup(outcome)

	if outcome == cache.Hit {
		return value, nil
	}
	if outcome == cache.Stale {
		m.log().Debug("memoize: entry expired, recomputing")
	}

	value, err = invoke()
	if err != nil {
		m.metrics.failure(stageCompute)
		m.log().WithError(err).Debug("memoize: computation failed, result not cached")
		return value, err
	}

	if err := store.Put(key, value); err != nil {
		m.metrics.failure(stageStore)
		return value, err
	}
	state.tag(m, store)
	return value, nil
}

// forget clears owner's store for this member and reports how many entries
// were dropped.
func (m *member) forget(owner Owner) int {
	if isNil(owner) {
		return 0
	}
	store, ok := owner.memoState().existing(m)
	if !ok {
		return 0
	}
	return store.Clear()
}

// size reports how many entries owner's store holds for this member.
func (m *member) size(owner Owner) int {
	if isNil(owner) {
		return 0
	}
	store, ok := owner.memoState().existing(m)
	if !ok {
		return 0
	}
	return store.Len()
}

func isNil(owner Owner) bool {
	if owner == nil {
		return true
	}
	rv := reflect.ValueOf(owner)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
