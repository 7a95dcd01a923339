// Package memoize adds per-instance memoization to struct properties and methods.
//
// # Overview
//
// A memoized member runs its computation once per distinct key for each
// owner instance and returns the stored value afterwards. Storage lives on
// the owner itself, in an embedded State, so two instances never share
// results and a value disappears with the instance that produced it.
//
//	type Greeter struct {
//		memoize.State
//		Name string
//	}
//
//	var greeting = memoize.Method2(memoize.Options{},
//		func(g *Greeter, salutation, target string) (string, error) {
//			return salutation + ", " + target + " from " + g.Name, nil
//		})
//
//	g := &Greeter{Name: "ana"}
//	msg, err := greeting.Call(g, "Hola", "Mundo")
//
// # Members
//
// Typed wrappers cover the common shapes:
//   - Property / NewProperty: a value derived from the owner alone (Lazy.Get)
//   - Method / NewMethod: a variadic method over []any arguments
//   - Method1, Method2: one and two typed arguments
//
// Decorate builds the same thing at runtime from any function whose first
// parameter is the owner. Its results must be (R) or (R, error). Targets
// that cannot be memoized yield a *cache.ConfigError rather than a
// half-working member.
//
// # Keys
//
// The key for a call is derived in this order:
//
//  1. AllArgs: every argument. Shallow mode joins them into one "!"
//     separated string; deep mode keys on the argument list.
//  2. KeyFunc: whatever the function returns, used verbatim.
//  3. Default: deep mode uses the argument list. Shallow mode uses the
//     first argument only, or the owner when there are no arguments.
//
// The shallow default ignores every argument after the first. Calls that
// differ only in a later argument share one entry:
//
//	m := memoize.Method(memoize.Options{}.Shallow(), fn)
//	m.Call(g, "Hola", "Mundo") // computes
//	m.Call(g, "Hola", "Mars")  // returns the "Mundo" result
//
// Use AllArgs or deep mode when later arguments matter.
//
// # Equality
//
// Shallow mode compares keys with ==; keys that are not comparable fail
// with cache.ErrUnhashableKey. Deep mode compares with Options.Equal
// (cache.DeepEqual by default) and scans entries linearly. Setting Hashed
// buckets deep keys by the xxhash of their serialized form first.
//
// # Expiration
//
// With Options.Expiration set, a value is stale once strictly more than the
// window has passed since it was stored. Stale values are recomputed and
// replaced on the next call. A zero window never expires.
//
// # Invalidation
//
// Members configured with Tags register each per-instance store under every
// tag once it holds a value. ClearTags empties those stores, across all
// instances, and returns the number of distinct stores it cleared:
//
//	memoize.ClearTags("users")
//
// Forget clears one member for one owner.
//
// # Errors
//
// Errors returned by a KeyFunc or by the computation are passed through
// unchanged and nothing is stored, so the next call runs again.
//
// # Concurrency
//
// Stores are safe for concurrent use. Computations run without any lock
// held so a member may call other members of the same owner. Concurrent
// misses on one key may each run the computation; the last to finish wins.
//
// # Observability
//
// Members log through apex/log (Options.Logger, log.Log by default) and
// count lookups and errors with OpenTelemetry counters named
// memoize.lookups and memoize.errors.
package memoize
