package memoize

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-memoize/cache"
	"go.opentelemetry.io/otel/metric"
)

// KeyFunc derives the cache key for one call. owner is the instance the
// member was invoked on and args are the call arguments, unmodified.
// The returned value is used verbatim as the key.
type KeyFunc func(owner any, args []any) (any, error)

// Options configures a memoized member. The zero value memoizes with deep
// equality on the full argument list and never expires.
type Options struct {
	// KeyFunc overrides key derivation. Cannot be combined with AllArgs.
	KeyFunc KeyFunc

	// AllArgs derives the key from every argument: a "!"-joined string in
	// shallow mode, the argument list in deep mode.
	AllArgs bool

	// Expiration is how long a stored value stays fresh. Zero never expires.
	Expiration time.Duration

	// Tags registers every store of this member under each tag so
	// ClearTags can invalidate them.
	Tags []string

	// Equality selects deep (default) or shallow key comparison.
	Equality cache.EqualityMode

	// Equal is the structural predicate for deep mode. Defaults to cache.DeepEqual.
	Equal cache.EqualFunc

	// Hashed buckets deep-mode keys by the xxhash of their serialized form.
	// Keys that Equal reports as equivalent must serialize identically, so a
	// custom Equal needs a Serializer that agrees with it.
	Hashed bool

	// Serializer renders keys for AllArgs in shallow mode and for Hashed stores.
	Serializer cache.KeySerializer

	// Registry receives tag registrations. Defaults to cache.DefaultTagRegistry().
	Registry *cache.TagRegistry

	Clock  cache.Clock
	Logger log.Interface
	Meter  metric.Meter

	// Name labels logs and metrics. Derived from the wrapped function when empty.
	Name string
}

// KeyedBy is the shorthand for Options{KeyFunc: fn}.
func KeyedBy(fn KeyFunc) Options {
	return Options{KeyFunc: fn}
}

// AllArguments is the shorthand for Options{AllArgs: true}.
func AllArguments() Options {
	return Options{AllArgs: true}
}

// WithExpiration returns a copy of o that expires values after d.
func (o Options) WithExpiration(d time.Duration) Options {
	o.Expiration = d
	return o
}

// WithExpirationMs is WithExpiration for a window given in milliseconds.
func (o Options) WithExpirationMs(ms int64) Options {
	return o.WithExpiration(time.Duration(ms) * time.Millisecond)
}

// WithTags returns a copy of o with tags appended.
func (o Options) WithTags(tags ...string) Options {
	o.Tags = append(append([]string(nil), o.Tags...), tags...)
	return o
}

// Shallow returns a copy of o that compares keys with ==.
func (o Options) Shallow() Options {
	o.Equality = cache.EqualityShallow
	return o
}

// Validate reports the first invalid option as a *cache.ConfigError.
func (o Options) Validate() error {
	if o.KeyFunc != nil && o.AllArgs {
		return &cache.ConfigError{Field: "KeyFunc", Message: "cannot be combined with AllArgs"}
	}
	if o.Hashed && o.Equality == cache.EqualityShallow {
		return &cache.ConfigError{Field: "Hashed", Message: "requires deep equality"}
	}
	if o.Hashed && o.Equal != nil && o.Serializer == nil {
		return &cache.ConfigError{Field: "Hashed", Message: "a custom Equal requires a matching Serializer"}
	}

	err := validation.ValidateStruct(&o,
		validation.Field(&o.Expiration, validation.Min(time.Duration(0))),
		validation.Field(&o.Tags, validation.Each(validation.Required, validation.By(notBlank))),
		validation.Field(&o.Equality, validation.In(cache.EqualityDeep, cache.EqualityShallow)),
	)
	return asConfigError(err)
}

func notBlank(value any) error {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// asConfigError folds ozzo's field map into the package's error type,
// picking the alphabetically first field for a stable message.
func asConfigError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &cache.ConfigError{Field: "Options", Message: err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &cache.ConfigError{Field: fields[0], Message: fieldErrs[fields[0]].Error()}
}
