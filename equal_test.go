package skink_test

import (
	"testing"

	"github.com/emmelopod/skink"
	"github.com/emmelopod/skink/testutils"
)

// TestIsEqualScalars tests scalar comparison rules.
func TestIsEqualScalars(t *testing.T) {
	rt := testutils.RT()
	cases := map[string]struct {
		a, b *skink.Object
		want bool
	}{
		"SameNumber":    {rt.NewNumber(50), rt.NewNumber(50), true},
		"OtherNumber":   {rt.NewNumber(50), rt.NewNumber(300), false},
		"NumberAsText":  {rt.NewNumber(50), rt.NewString("50"), true},
		"PaddedText":    {rt.NewString(" 50 "), rt.NewNumber(50), true},
		"Text":          {rt.NewString("chair"), rt.NewString("chair"), true},
		"TextCase":      {rt.NewString("chair"), rt.NewString("Chair"), false},
		"BoolAsNumber":  {rt.NewBool(true), rt.NewNumber(1), true},
		"UndefUndef":    {rt.NewUndef(), rt.NewUndef(), true},
		"UndefZero":     {rt.NewUndef(), rt.NewNumber(0), false},
		"UndefEmpty":    {rt.NewUndef(), rt.NewString(""), false},
		"BytesText":     {rt.NewBytes([]byte("abc")), rt.NewString("abc"), true},
		"TaintIgnored":  {rt.TaintedString("x"), rt.NewString("x"), true},
		"NotANumber":    {rt.NewString("50x"), rt.NewNumber(50), false},
		"ExponentText":  {rt.NewString("5e1"), rt.NewNumber(50), true},
		"ScalarMapping": {rt.NewNumber(50), rt.NewMap(nil), false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			eq, err := rt.Meta(c.a).IsEqual(c.b)
			if err != nil {
				t.Fatalf("is_equal: %v", err)
			}
			if eq != c.want {
				t.Errorf("is_equal = %v, want %v", eq, c.want)
			}
		})
	}
}

// TestIsEqualReflexive tests that every value equals itself.
func TestIsEqualReflexive(t *testing.T) {
	rt := testutils.RT()
	objs := map[string]*skink.Object{
		"Scalar": rt.NewString("x"),
		"List":   rt.NewList(rt.NewNumber(1)),
		"Map":    rt.NewMap(map[string]*skink.Object{"k": rt.NewNumber(1)}),
		"Code":   rt.NewCode("f", nil),
	}
	for name, o := range objs {
		t.Run(name, func(t *testing.T) {
			eq, err := rt.Meta(o).IsEqual(o)
			if err != nil {
				t.Fatalf("is_equal: %v", err)
			}
			if !eq {
				t.Error("value does not equal itself")
			}
		})
	}
}

// furniture builds the mapping {chair: 50, table: 300}.
func furniture(rt *skink.Runtime) *skink.Object {
	return rt.NewMap(map[string]*skink.Object{
		"chair": rt.NewNumber(50),
		"table": rt.NewNumber(300),
	})
}

// TestIsEqualContainers tests deep comparison over nested structures.
func TestIsEqualContainers(t *testing.T) {
	rt := testutils.RT()
	t.Run("MappingsByContent", func(t *testing.T) {
		eq, err := rt.Meta(furniture(rt)).IsEqual(furniture(rt))
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if !eq {
			t.Error("structurally identical mappings unequal")
		}
	})
	t.Run("ValueShapeDiffers", func(t *testing.T) {
		other := rt.NewMap(map[string]*skink.Object{
			"chair": rt.NewNumber(50),
			"table": rt.NewList(rt.NewNumber(250), rt.NewNumber(255)),
		})
		eq, err := rt.Meta(furniture(rt)).IsEqual(other)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("mapping equals one whose value shape differs at table")
		}
	})
	t.Run("KeySetDiffers", func(t *testing.T) {
		other := rt.NewMap(map[string]*skink.Object{
			"chair": rt.NewNumber(50),
			"stool": rt.NewNumber(300),
		})
		eq, err := rt.Meta(furniture(rt)).IsEqual(other)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("mappings with different key sets equal")
		}
	})
	t.Run("SequenceOrderMatters", func(t *testing.T) {
		a := rt.NewList(rt.NewNumber(1), rt.NewNumber(2))
		b := rt.NewList(rt.NewNumber(2), rt.NewNumber(1))
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("sequences equal despite order")
		}
	})
	t.Run("Nested", func(t *testing.T) {
		build := func() *skink.Object {
			return rt.NewMap(map[string]*skink.Object{
				"rooms": rt.NewList(furniture(rt), furniture(rt)),
			})
		}
		eq, err := rt.Meta(build()).IsEqual(build())
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if !eq {
			t.Error("identical nested structures unequal")
		}
	})
	t.Run("DistinctCode", func(t *testing.T) {
		a := rt.NewCode("f", nil)
		b := rt.NewCode("f", nil)
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("distinct code values equal")
		}
	})
}

// TestIsEqualBlessed tests class bindings and overload hooks in comparison.
func TestIsEqualBlessed(t *testing.T) {
	f := testutils.NewFixture(t)
	rt := f.RT
	t.Run("ClassMismatch", func(t *testing.T) {
		a := furniture(rt)
		if err := rt.Bless(a, f.Dog); err != nil {
			t.Fatalf("bless: %v", err)
		}
		eq, err := rt.Meta(a).IsEqual(furniture(rt))
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("blessed mapping equals unblessed twin")
		}
	})
	t.Run("SameClass", func(t *testing.T) {
		a, b := furniture(rt), furniture(rt)
		for _, o := range []*skink.Object{a, b} {
			if err := rt.Bless(o, f.Dog); err != nil {
				t.Fatalf("bless: %v", err)
			}
		}
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if !eq {
			t.Error("identically blessed twins unequal")
		}
	})
	t.Run("NumericHooks", func(t *testing.T) {
		a := f.Box(t, f.Numberish, rt.NewNumber(42))
		b := f.Box(t, f.Numberish, rt.NewString("42"))
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if !eq {
			t.Error("numerically equal boxes unequal")
		}
		c := f.Box(t, f.Numberish, rt.NewNumber(43))
		eq, err = rt.Meta(a).IsEqual(c)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if eq {
			t.Error("numerically different boxes equal")
		}
	})
	t.Run("StringHooks", func(t *testing.T) {
		a := f.Box(t, f.Stringish, rt.NewString("same"))
		b := f.Box(t, f.Stringish, rt.NewString("same"))
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			t.Fatalf("is_equal: %v", err)
		}
		if !eq {
			t.Error("boxes with equal string forms unequal")
		}
	})
}

// TestIsEqualCyclic tests that comparing self-referential structures
// terminates.
func TestIsEqualCyclic(t *testing.T) {
	rt := testutils.RT()
	build := func() *skink.Object {
		o := rt.NewMap(map[string]*skink.Object{"name": rt.NewString("loop")})
		if err := o.MapPut("self", o); err != nil {
			t.Fatalf("building cycle: %v", err)
		}
		return o
	}
	eq, err := rt.Meta(build()).IsEqual(build())
	if err != nil {
		t.Fatalf("is_equal: %v", err)
	}
	if !eq {
		t.Error("isomorphic cyclic structures unequal")
	}
}
