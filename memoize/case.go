package memoize

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// funcName derives a snake_case label from a function value, e.g.
// "(*Greeter).FullName-fm" becomes "full_name". Anonymous functions
// have no usable name and yield "".
func funcName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return ""
	}

	name := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if isAnonymous(name) {
		return ""
	}
	return toSnake(name)
}

// isAnonymous matches compiler names for closures such as "func1" or
// "func2.1" (the latter has already been cut down to "1").
func isAnonymous(name string) bool {
	digits := strings.TrimPrefix(name, "func")
	if digits == "" {
		return name == "func"
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// toSnake converts an identifier to snake_case. Runs of capitals are kept
// together ("HTTPServer" -> "http_server") and anything that is not a
// letter or digit becomes a single underscore.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	underscore := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					underscore()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			underscore()
		}
	}

	return strings.Trim(b.String(), "_")
}
