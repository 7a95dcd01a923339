package memoize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-memoize/cache"
)

// jsonSerializer renders keys as JSON so its canonical form agrees with cache.JSONEqual.
type jsonSerializer struct{}

func (jsonSerializer) SerializeKey(args ...any) string { return jsonSerializer{}.SerializeValue(args) }

func (jsonSerializer) SerializeValue(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestOptions_Validate(t *testing.T) {
	keyFn := func(any, []any) (any, error) { return nil, nil }

	tests := []struct {
		name      string
		opts      Options
		wantField string
	}{
		{name: "zero value", opts: Options{}},
		{name: "full deep", opts: Options{AllArgs: true, Expiration: time.Second, Tags: []string{"a"}, Hashed: true}},
		{name: "shallow keyed", opts: KeyedBy(keyFn).Shallow()},
		{name: "key func with all args", opts: Options{KeyFunc: keyFn, AllArgs: true}, wantField: "KeyFunc"},
		{name: "hashed shallow", opts: Options{Hashed: true}.Shallow(), wantField: "Hashed"},
		{name: "hashed custom equal", opts: Options{Hashed: true, Equal: cache.JSONEqual}, wantField: "Hashed"},
		{name: "hashed custom equal with serializer", opts: Options{Hashed: true, Equal: cache.JSONEqual, Serializer: jsonSerializer{}}},
		{name: "negative expiration", opts: Options{Expiration: -time.Millisecond}, wantField: "Expiration"},
		{name: "empty tag", opts: Options{Tags: []string{"ok", ""}}, wantField: "Tags"},
		{name: "blank tag", opts: Options{Tags: []string{"  "}}, wantField: "Tags"},
		{name: "unknown equality", opts: Options{Equality: cache.EqualityMode(9)}, wantField: "Equality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *cache.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want *cache.ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (%v)", cfgErr.Field, tt.wantField, err)
			}
		})
	}
}

func TestOptions_Shorthands(t *testing.T) {
	if !AllArguments().AllArgs {
		t.Error("AllArguments should set AllArgs")
	}
	if KeyedBy(func(any, []any) (any, error) { return nil, nil }).KeyFunc == nil {
		t.Error("KeyedBy should set KeyFunc")
	}
	if got := (Options{}).WithExpirationMs(1500).Expiration; got != 1500*time.Millisecond {
		t.Errorf("WithExpirationMs = %v", got)
	}
	if got := (Options{}).Shallow().Equality; got != cache.EqualityShallow {
		t.Errorf("Shallow = %v", got)
	}
}

func TestOptions_WithTagsDoesNotAlias(t *testing.T) {
	base := Options{Tags: make([]string, 1, 4)}
	base.Tags[0] = "base"

	a := base.WithTags("a")
	b := base.WithTags("b")

	if !reflect.DeepEqual(a.Tags, []string{"base", "a"}) {
		t.Errorf("a.Tags = %v", a.Tags)
	}
	if !reflect.DeepEqual(b.Tags, []string{"base", "b"}) {
		t.Errorf("b.Tags = %v", b.Tags)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := dedupeStrings([]string{"foo", "bar", "foo", "baz", "bar"})
	want := []string{"foo", "bar", "baz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeStrings = %v, want %v", got, want)
	}
	if dedupeStrings(nil) != nil {
		t.Error("dedupeStrings(nil) should be nil")
	}
}

func TestDeriveKey(t *testing.T) {
	owner := newGreeter("ana")
	serializer := cache.NewDefaultKeySerializer()

	tests := []struct {
		name string
		m    member
		args []any
		want any
	}{
		{
			name: "deep default",
			m:    member{equality: cache.EqualityDeep},
			args: []any{"Hola", "Mundo"},
			want: []any{"Hola", "Mundo"},
		},
		{
			name: "deep default without args",
			m:    member{equality: cache.EqualityDeep},
			want: []any{},
		},
		{
			name: "shallow default uses first argument",
			m:    member{equality: cache.EqualityShallow},
			args: []any{"Hola", "Mundo"},
			want: "Hola",
		},
		{
			name: "shallow default without args uses owner",
			m:    member{equality: cache.EqualityShallow},
			want: owner,
		},
		{
			name: "shallow all args",
			m:    member{equality: cache.EqualityShallow, allArgs: true, serializer: serializer},
			args: []any{4, 6},
			want: "4!6",
		},
		{
			name: "deep all args",
			m:    member{equality: cache.EqualityDeep, allArgs: true, serializer: serializer},
			args: []any{4, 6},
			want: []any{4, 6},
		},
		{
			name: "key func",
			m: member{equality: cache.EqualityShallow, keyFunc: func(o any, args []any) (any, error) {
				return len(args), nil
			}},
			args: []any{"a", "b", "c"},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.deriveKey(owner, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("deriveKey = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDeriveKey_CopiesArguments(t *testing.T) {
	m := member{equality: cache.EqualityDeep}
	args := []any{"a"}

	key, _ := m.deriveKey(newGreeter("ana"), args)
	args[0] = "mutated"

	if got := key.([]any)[0]; got != "a" {
		t.Errorf("stored key aliased caller arguments: %v", got)
	}
}
