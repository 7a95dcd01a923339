package cache

import (
	"encoding/json"
	"reflect"

	"github.com/yudai/gojsondiff"
)

// EqualFunc decides whether two derived keys are structurally equivalent.
// Deep stores call it for every stored key on each lookup, so it should be
// cheap for the key shapes a member expects.
type EqualFunc func(a, b any) bool

// DeepEqual is the default structural predicate. It recurses into nested
// containers, compares primitives by value and follows pointers.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// JSONEqual treats two keys as equal when their JSON documents match, so a
// struct and a map with the same fields collide, and so do numbers that only
// differ in Go type. Keys that cannot be marshaled never match anything.
func JSONEqual(a, b any) bool {
	left, err := json.Marshal(map[string]any{"key": a})
	if err != nil {
		return false
	}
	right, err := json.Marshal(map[string]any{"key": b})
	if err != nil {
		return false
	}

	diff, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false
	}
	return !diff.Modified()
}
