package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator joins the textual form of each argument in an all-arguments key.
const KeySeparator = "!"

// maxDepth bounds recursion through self-referencing values.
const maxDepth = 32

// KeySerializer renders call arguments into stable strings.
// SerializeKey builds the all-arguments key of shallow members;
// SerializeValue is the canonical form hashed stores bucket on.
type KeySerializer interface {
	SerializeKey(args ...any) string
	SerializeValue(v any) string
}

// defaultKeySerializer implements KeySerializer using reflection-based serialization.
// It handles function pointers using %p formatting, recursive containers, and falls back
// to JSON for anything else while producing the same string for structurally equal values.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey converts each argument independently and joins them with KeySeparator.
// No arguments produce the empty string.
func (s *defaultKeySerializer) SerializeKey(args ...any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = s.SerializeValue(arg)
	}
	return strings.Join(parts, KeySeparator)
}

// SerializeValue renders a single value.
func (s *defaultKeySerializer) SerializeValue(v any) string {
	return s.serialize(v, 0)
}

func (s *defaultKeySerializer) serialize(v any, depth int) string {
	if v == nil {
		return "nil"
	}
	if depth > maxDepth {
		return "..."
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Func:
		return fmt.Sprintf("func:%p", v)
	case reflect.Chan:
		return fmt.Sprintf("chan:%p", v)
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return s.serialize(rv.Elem().Interface(), depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.serializeSequence("slice", rv, depth)
	case reflect.Array:
		return s.serializeSequence("array", rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv, depth)
	case reflect.Struct:
		return s.serializeStruct(rv, depth)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

func (s *defaultKeySerializer) serializeSequence(label string, rv reflect.Value, depth int) string {
	length := rv.Len()
	parts := make([]string, length)
	for i := 0; i < length; i++ {
		parts[i] = s.serializeElem(rv.Index(i), depth)
	}
	return fmt.Sprintf("%s[%d]:{%s}", label, length, strings.Join(parts, ","))
}

// serializeMap sorts pairs by their serialized key for deterministic output.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value, depth int) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := s.serializeElem(iter.Key(), depth)
		v := s.serializeElem(iter.Value(), depth)
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

// serializeStruct writes exported fields only.
func (s *defaultKeySerializer) serializeStruct(rv reflect.Value, depth int) string {
	rt := rv.Type()
	parts := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		parts = append(parts, field.Name+":"+s.serializeElem(rv.Field(i), depth))
	}
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

func (s *defaultKeySerializer) serializeElem(rv reflect.Value, depth int) string {
	if !rv.CanInterface() {
		return "opaque"
	}
	return s.serialize(rv.Interface(), depth+1)
}

// jsonFallback provides JSON serialization as a last resort
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "fallback:" + reflect.TypeOf(v).String()
	}
	return "json:" + string(data)
}
