package memoize

import "github.com/goliatone/go-memoize/cache"

// deriveKey computes the lookup key for a call, in priority order:
// AllArgs, then KeyFunc, then the mode default.
//
// Shallow and deep defaults differ on purpose. Shallow mode keys on the
// first argument only (later arguments are ignored) or on the owner itself
// when there are none. Deep mode keys on the whole argument list.
func (m *member) deriveKey(owner Owner, args []any) (any, error) {
	switch {
	case m.allArgs:
		if m.equality == cache.EqualityShallow {
			return m.serializer.SerializeKey(args...), nil
		}
		return argList(args), nil

	case m.keyFunc != nil:
		return m.keyFunc(owner, args)

	case m.equality == cache.EqualityShallow:
		if len(args) == 0 {
			return owner, nil
		}
		return args[0], nil

	default:
		return argList(args), nil
	}
}

// argList copies args so a stored key does not alias the caller's slice.
// Zero arguments yield an empty, non-nil list.
func argList(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)
	return out
}
