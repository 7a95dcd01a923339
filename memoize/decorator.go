package memoize

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-memoize/cache"
)

// ErrInvalidArguments is returned by Func.Call when the arguments do not
// match the decorated function's signature.
var ErrInvalidArguments = errors.New("memoize: invalid arguments")

var (
	ownerType = reflect.TypeOf((*Owner)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Func is a memoized function built at runtime from an arbitrary target.
// The target's first parameter is the owner; its results are either (R) or
// (R, error). A target with only an owner parameter is a property, anything
// else is a method.
type Func struct {
	m          *member
	fn         reflect.Value
	typ        reflect.Type
	returnsErr bool
}

// Decorate validates target and wraps it in a memoized Func. Targets that
// cannot be memoized (nil, not a function, no owner parameter, an owner type
// that does not embed State, unsupported results) yield a *cache.ConfigError.
func Decorate(target any, opts Options) (*Func, error) {
	if target == nil {
		return nil, nilTarget()
	}

	fn := reflect.ValueOf(target)
	typ := fn.Type()
	if typ.Kind() != reflect.Func {
		return nil, &cache.ConfigError{
			Field:   "target",
			Message: fmt.Sprintf("must be a function or method, got %s", typ),
		}
	}
	if fn.IsNil() {
		return nil, nilTarget()
	}

	if typ.NumIn() == 0 || (typ.IsVariadic() && typ.NumIn() == 1) {
		return nil, &cache.ConfigError{Field: "target", Message: "must take the owner as its first parameter"}
	}
	if !typ.In(0).Implements(ownerType) {
		return nil, &cache.ConfigError{
			Field:   "target",
			Message: fmt.Sprintf("owner parameter %s does not embed memoize.State", typ.In(0)),
		}
	}

	returnsErr, err := checkResults(typ)
	if err != nil {
		return nil, err
	}

	kind := kindMethod
	if typ.NumIn() == 1 {
		kind = kindProperty
	}

	m, err := newMember(opts, kind, funcName(target))
	if err != nil {
		return nil, err
	}

	return &Func{m: m, fn: fn, typ: typ, returnsErr: returnsErr}, nil
}

// MustDecorate is like Decorate but panics on error.
func MustDecorate(target any, opts Options) *Func {
	return must(Decorate(target, opts))
}

func checkResults(typ reflect.Type) (bool, error) {
	switch typ.NumOut() {
	case 1:
		return false, nil
	case 2:
		if typ.Out(1) == errorType {
			return true, nil
		}
	}
	return false, &cache.ConfigError{
		Field:   "target",
		Message: fmt.Sprintf("must return (R) or (R, error), got %d results", typ.NumOut()),
	}
}

// Kind reports "property" or "method".
func (f *Func) Kind() string { return f.m.kind }

// Name returns the label used in logs and metrics.
func (f *Func) Name() string { return f.m.name }

// Get is Call with no arguments, the usual way to read a property.
func (f *Func) Get(owner Owner) (any, error) {
	return f.Call(owner)
}

// Call invokes the memoized function on owner. Arguments are checked
// against the target signature before any lookup happens.
func (f *Func) Call(owner Owner, args ...any) (any, error) {
	in, err := f.bind(owner, args)
	if err != nil {
		return nil, err
	}

	return f.m.call(owner, args, func() (any, error) {
		return f.invoke(in)
	})
}

// Forget drops every entry owner holds for this function.
func (f *Func) Forget(owner Owner) int { return f.m.forget(owner) }

// Size reports how many distinct keys owner holds for this function.
func (f *Func) Size(owner Owner) int { return f.m.size(owner) }

func (f *Func) bind(owner Owner, args []any) ([]reflect.Value, error) {
	if isNil(owner) {
		return nil, ErrNilOwner
	}

	ownerVal := reflect.ValueOf(owner)
	if !ownerVal.Type().AssignableTo(f.typ.In(0)) {
		return nil, fmt.Errorf("%w: owner %s is not %s", ErrInvalidArguments, ownerVal.Type(), f.typ.In(0))
	}

	fixed := f.typ.NumIn() - 1
	if f.typ.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("%w: want at least %d, got %d", ErrInvalidArguments, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrInvalidArguments, fixed, len(args))
	}

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, ownerVal)
	for i, arg := range args {
		var want reflect.Type
		if i < fixed {
			want = f.typ.In(i + 1)
		} else {
			want = f.typ.In(f.typ.NumIn() - 1).Elem()
		}

		v, err := argValue(arg, want)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrInvalidArguments, i, err)
		}
		in = append(in, v)
	}
	return in, nil
}

func argValue(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", want)
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), want)
	}
	return v, nil
}

func (f *Func) invoke(in []reflect.Value) (any, error) {
	out := f.fn.Call(in)

	value := out[0].Interface()
	if !f.returnsErr {
		return value, nil
	}
	if errVal := out[1]; !errVal.IsNil() {
		return value, errVal.Interface().(error)
	}
	return value, nil
}
