package memoize_test

import (
	"fmt"

	"github.com/goliatone/go-memoize/cache"
	"github.com/goliatone/go-memoize/memoize"
)

type Planet struct {
	memoize.State
	Name string

	lookups int
}

var registry = cache.NewTagRegistry()

var greeting = memoize.Method2(memoize.Options{Registry: registry, Tags: []string{"greetings"}},
	func(p *Planet, salutation, visitor string) (string, error) {
		p.lookups++
		return fmt.Sprintf("%s, %s from %s", salutation, visitor, p.Name), nil
	})

func Example() {
	mars := &Planet{Name: "Mars"}

	a, _ := greeting.Call(mars, "Hola", "Ana")
	b, _ := greeting.Call(mars, "Hola", "Ana")
	c, _ := greeting.Call(mars, "Hola", "Bo")
	fmt.Println(a)
	fmt.Println(b)
	fmt.Println(c)
	fmt.Println("computed:", mars.lookups)

	registry.ClearTags("greetings")
	greeting.Call(mars, "Hola", "Ana")
	fmt.Println("after clear:", mars.lookups)

	// Output:
	// Hola, Ana from Mars
	// Hola, Ana from Mars
	// Hola, Bo from Mars
	// computed: 2
	// after clear: 3
}

func ExampleDecorate() {
	area := memoize.MustDecorate(func(p *Planet, radius float64) float64 {
		p.lookups++
		return 3 * radius * radius
	}, memoize.Options{Registry: cache.NewTagRegistry()})

	earth := &Planet{Name: "Earth"}
	v, _ := area.Call(earth, 2.0)
	area.Call(earth, 2.0)

	fmt.Println(area.Kind(), v, earth.lookups)
	// Output: method 12 1
}
