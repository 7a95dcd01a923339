package memoize

import "github.com/goliatone/go-memoize/cache"

// Lazy is a memoized property: a value computed from its owner alone.
type Lazy[O Owner, R any] struct {
	m  *member
	fn func(owner O) (R, error)
}

// Memo is a memoized method taking any number of untyped arguments.
type Memo[O Owner, R any] struct {
	m  *member
	fn func(owner O, args ...any) (R, error)
}

// Memo1 is a memoized method of one argument.
type Memo1[O Owner, A, R any] struct {
	m  *member
	fn func(owner O, a A) (R, error)
}

// Memo2 is a memoized method of two arguments.
type Memo2[O Owner, A, B, R any] struct {
	m  *member
	fn func(owner O, a A, b B) (R, error)
}

// NewProperty builds a memoized property, returning a *cache.ConfigError
// for invalid options.
func NewProperty[O Owner, R any](opts Options, fn func(owner O) (R, error)) (*Lazy[O, R], error) {
	if fn == nil {
		return nil, nilTarget()
	}
	m, err := newMember(opts, kindProperty, funcName(fn))
	if err != nil {
		return nil, err
	}
	return &Lazy[O, R]{m: m, fn: fn}, nil
}

// Property is NewProperty for package-level declarations; it panics on
// invalid options.
func Property[O Owner, R any](opts Options, fn func(owner O) (R, error)) *Lazy[O, R] {
	return must(NewProperty(opts, fn))
}

// NewMethod builds a memoized variadic method, returning a *cache.ConfigError
// for invalid options.
func NewMethod[O Owner, R any](opts Options, fn func(owner O, args ...any) (R, error)) (*Memo[O, R], error) {
	if fn == nil {
		return nil, nilTarget()
	}
	m, err := newMember(opts, kindMethod, funcName(fn))
	if err != nil {
		return nil, err
	}
	return &Memo[O, R]{m: m, fn: fn}, nil
}

// Method is NewMethod for package-level declarations; it panics on invalid options.
func Method[O Owner, R any](opts Options, fn func(owner O, args ...any) (R, error)) *Memo[O, R] {
	return must(NewMethod(opts, fn))
}

// Method1 builds a memoized one-argument method; it panics on invalid options.
func Method1[O Owner, A, R any](opts Options, fn func(owner O, a A) (R, error)) *Memo1[O, A, R] {
	if fn == nil {
		panic(nilTarget())
	}
	m := must(newMember(opts, kindMethod, funcName(fn)))
	return &Memo1[O, A, R]{m: m, fn: fn}
}

// Method2 builds a memoized two-argument method; it panics on invalid options.
func Method2[O Owner, A, B, R any](opts Options, fn func(owner O, a A, b B) (R, error)) *Memo2[O, A, B, R] {
	if fn == nil {
		panic(nilTarget())
	}
	m := must(newMember(opts, kindMethod, funcName(fn)))
	return &Memo2[O, A, B, R]{m: m, fn: fn}
}

// Get returns the memoized value for owner, computing it on first use.
func (p *Lazy[O, R]) Get(owner O) (R, error) {
	v, err := p.m.call(owner, nil, func() (any, error) {
		return p.fn(owner)
	})
	return typed[R](v, err)
}

// Forget drops owner's stored value and reports how many entries were dropped.
func (p *Lazy[O, R]) Forget(owner O) int { return p.m.forget(owner) }

// Size reports how many entries owner holds for this property.
func (p *Lazy[O, R]) Size(owner O) int { return p.m.size(owner) }

// Name returns the label used in logs and metrics.
func (p *Lazy[O, R]) Name() string { return p.m.name }

// Call returns the memoized result for owner and args.
func (p *Memo[O, R]) Call(owner O, args ...any) (R, error) {
	v, err := p.m.call(owner, args, func() (any, error) {
		return p.fn(owner, args...)
	})
	return typed[R](v, err)
}

// Forget drops every entry owner holds for this method.
func (p *Memo[O, R]) Forget(owner O) int { return p.m.forget(owner) }

// Size reports how many distinct keys owner holds for this method.
func (p *Memo[O, R]) Size(owner O) int { return p.m.size(owner) }

// Name returns the label used in logs and metrics.
func (p *Memo[O, R]) Name() string { return p.m.name }

// Call returns the memoized result for owner and a.
func (p *Memo1[O, A, R]) Call(owner O, a A) (R, error) {
	v, err := p.m.call(owner, []any{a}, func() (any, error) {
		return p.fn(owner, a)
	})
	return typed[R](v, err)
}

// Forget drops every entry owner holds for this method.
func (p *Memo1[O, A, R]) Forget(owner O) int { return p.m.forget(owner) }

// Size reports how many distinct arguments owner holds results for.
func (p *Memo1[O, A, R]) Size(owner O) int { return p.m.size(owner) }

// Call returns the memoized result for owner, a and b.
func (p *Memo2[O, A, B, R]) Call(owner O, a A, b B) (R, error) {
	v, err := p.m.call(owner, []any{a, b}, func() (any, error) {
		return p.fn(owner, a, b)
	})
	return typed[R](v, err)
}

// Forget drops every entry owner holds for this method.
func (p *Memo2[O, A, B, R]) Forget(owner O) int { return p.m.forget(owner) }

// Size reports how many distinct argument pairs owner holds results for.
func (p *Memo2[O, A, B, R]) Size(owner O) int { return p.m.size(owner) }

// typed narrows a stored value back to R. A nil interface yields R's zero value.
func typed[R any](v any, err error) (R, error) {
	r, _ := v.(R)
	return r, err
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func nilTarget() error {
	return &cache.ConfigError{Field: "target", Message: "cannot be nil"}
}
