// Package testutils provides utilities for testing the skink runtime in Go.
package testutils

import (
	"sync"
	"testing"

	"github.com/emmelopod/skink"
)

// testRT is the runtime used for all tests.
var testRT *skink.Runtime

var testRTInit sync.Once

// RT returns a runtime for testing. The runtime is shared by all tests that
// use this package; tests that edit the class hierarchy should build their
// own fixture with NewFixture instead.
func RT() *skink.Runtime {
	testRTInit.Do(ResetRT)
	return testRT
}

// ResetRT reinitializes the runtime returned by RT. It is not safe to call
// this in parallel tests.
func ResetRT() {
	testRT = skink.NewRuntime()
}

// A Fixture is a fresh runtime with a small class hierarchy: a diamond of
// Animal, Dog, Cat, and Chimera, plus the overloaded classes Stringish and
// Numberish whose hooks read the receiver mapping's "value" entry.
type Fixture struct {
	RT *skink.Runtime

	Animal, Dog, Cat, Chimera *skink.Class
	Stringish, Numberish      *skink.Class
}

// NewFixture builds a fixture on its own runtime. The fixture's hierarchy
// may be edited freely without affecting other tests.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	f := &Fixture{RT: skink.NewRuntime()}
	var err error
	if f.Animal, err = f.RT.DefineClass("Animal"); err != nil {
		t.Fatalf("defining Animal: %v", err)
	}
	f.Animal.SetVersion("1.0")
	f.Animal.Define("speak", func(rt *skink.Runtime, call *skink.Call) (*skink.Object, error) {
		return rt.NewString("..."), nil
	})
	if f.Dog, err = f.RT.DefineClass("Dog", f.Animal); err != nil {
		t.Fatalf("defining Dog: %v", err)
	}
	f.Dog.Define("speak", func(rt *skink.Runtime, call *skink.Call) (*skink.Object, error) {
		return rt.NewString("Woof"), nil
	})
	if f.Cat, err = f.RT.DefineClass("Cat", f.Animal); err != nil {
		t.Fatalf("defining Cat: %v", err)
	}
	f.Cat.Define("speak", func(rt *skink.Runtime, call *skink.Call) (*skink.Object, error) {
		return rt.NewString("Meow"), nil
	})
	if f.Chimera, err = f.RT.DefineClass("Chimera", f.Dog, f.Cat); err != nil {
		t.Fatalf("defining Chimera: %v", err)
	}
	if f.Stringish, err = f.RT.DefineClass("Stringish"); err != nil {
		t.Fatalf("defining Stringish: %v", err)
	}
	f.Stringish.SetOverload(skink.OpString, boxValue)
	if f.Numberish, err = f.RT.DefineClass("Numberish"); err != nil {
		t.Fatalf("defining Numberish: %v", err)
	}
	f.Numberish.SetOverload(skink.OpNumber, boxValue)
	return f
}

// boxValue is the overload hook shared by Stringish and Numberish. It
// returns the receiver mapping's "value" entry.
func boxValue(rt *skink.Runtime, call *skink.Call) (*skink.Object, error) {
	v := call.Receiver.MapAt("value")
	if v == nil {
		return rt.NewUndef(), nil
	}
	return v, nil
}

// Box wraps inner in a mapping {value: inner} blessed into class c.
func (f *Fixture) Box(t *testing.T, c *skink.Class, inner *skink.Object) *skink.Object {
	t.Helper()
	o := f.RT.NewMap(map[string]*skink.Object{"value": inner})
	if err := f.RT.Bless(o, c); err != nil {
		t.Fatalf("blessing into %s: %v", c.Name(), err)
	}
	return o
}

// ClassNames maps classes to their names, for comparing linearizations.
func ClassNames(classes []*skink.Class) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name()
	}
	return names
}
