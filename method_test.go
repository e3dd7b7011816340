package skink_test

import (
	"errors"
	"testing"

	"github.com/emmelopod/skink"
	"github.com/emmelopod/skink/testutils"
)

// TestCallDispatch tests method resolution along the linearization.
func TestCallDispatch(t *testing.T) {
	f := testutils.NewFixture(t)
	rt := f.RT
	dog := rt.NewString("Rex")
	if err := rt.Bless(dog, f.Dog); err != nil {
		t.Fatalf("bless: %v", err)
	}
	chimera := rt.NewString("Nix")
	if err := rt.Bless(chimera, f.Chimera); err != nil {
		t.Fatalf("bless: %v", err)
	}
	cases := map[string]struct {
		recv *skink.Object
		want string
	}{
		"Own":       {dog, "Woof"},
		"Inherited": {chimera, "Woof"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := rt.Call(c.recv, "speak")
			if err != nil {
				t.Fatalf("speak: %v", err)
			}
			if r.Text() != c.want {
				t.Errorf("speak = %q, want %q", r.Text(), c.want)
			}
		})
	}
	t.Run("Unknown", func(t *testing.T) {
		_, err := rt.Call(dog, "fly")
		if err == nil {
			t.Fatal("unknown method succeeded")
		}
		var usage *skink.UsageError
		if !errors.As(err, &usage) {
			t.Errorf("unknown method error is %T, want *UsageError", err)
		}
	})
}

// TestCoreMethods tests the method sets of the core shape classes.
func TestCoreMethods(t *testing.T) {
	rt := testutils.RT()
	t.Run("ScalarUc", func(t *testing.T) {
		r, err := rt.Call(rt.NewString("chair"), "uc")
		if err != nil {
			t.Fatalf("uc: %v", err)
		}
		if r.Text() != "CHAIR" {
			t.Errorf("uc = %q, want CHAIR", r.Text())
		}
	})
	t.Run("ScalarLength", func(t *testing.T) {
		r, err := rt.Call(rt.NewString("héllo"), "length")
		if err != nil {
			t.Fatalf("length: %v", err)
		}
		if r.Number() != 5 {
			t.Errorf("length = %v, want 5 (characters, not bytes)", r.Number())
		}
	})
	t.Run("ScalarChomp", func(t *testing.T) {
		o := rt.NewString("line\n")
		r, err := rt.Call(o, "chomp")
		if err != nil {
			t.Fatalf("chomp: %v", err)
		}
		if r.Number() != 1 {
			t.Errorf("chomp removed %v characters, want 1", r.Number())
		}
		if o.Text() != "line" {
			t.Errorf("after chomp: %q, want %q", o.Text(), "line")
		}
	})
	t.Run("SequencePush", func(t *testing.T) {
		o := rt.NewList(rt.NewNumber(1))
		r, err := rt.Call(o, "push", rt.NewNumber(2), rt.NewNumber(3))
		if err != nil {
			t.Fatalf("push: %v", err)
		}
		if r.Number() != 3 {
			t.Errorf("push = %v, want new size 3", r.Number())
		}
		if o.At(2).Number() != 3 {
			t.Errorf("element 2 is %v, want 3", o.At(2).Number())
		}
	})
	t.Run("SequenceJoin", func(t *testing.T) {
		o := rt.NewList(rt.NewString("a"), rt.NewNumber(2), rt.NewString("c"))
		r, err := rt.Call(o, "join", rt.NewString("-"))
		if err != nil {
			t.Fatalf("join: %v", err)
		}
		if r.Text() != "a-2-c" {
			t.Errorf("join = %q, want a-2-c", r.Text())
		}
	})
	t.Run("MappingKeys", func(t *testing.T) {
		o := rt.NewMap(map[string]*skink.Object{
			"table": rt.NewNumber(300),
			"chair": rt.NewNumber(50),
		})
		r, err := rt.Call(o, "keys")
		if err != nil {
			t.Fatalf("keys: %v", err)
		}
		if r.Len() != 2 || r.At(0).Text() != "chair" || r.At(1).Text() != "table" {
			t.Errorf("keys not sorted: %q, %q", r.At(0).Text(), r.At(1).Text())
		}
	})
	t.Run("MappingDelete", func(t *testing.T) {
		o := rt.NewMap(map[string]*skink.Object{"chair": rt.NewNumber(50)})
		r, err := rt.Call(o, "delete", rt.NewString("chair"))
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if !r.Bool() {
			t.Error("delete of present key reported absent")
		}
		if o.MapExists("chair") {
			t.Error("key still present after delete")
		}
	})
	t.Run("CodeCall", func(t *testing.T) {
		fn := rt.NewCode("double", func(rt *skink.Runtime, call *skink.Call) (*skink.Object, error) {
			n, err := call.NumberArg(0)
			if err != nil {
				return nil, err
			}
			return rt.NewNumber(2 * n), nil
		})
		r, err := rt.Call(fn, "call", rt.NewNumber(21))
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		if r.Number() != 42 {
			t.Errorf("call = %v, want 42", r.Number())
		}
	})
	t.Run("CodeCallNilFunction", func(t *testing.T) {
		// A code value built without a function is rejected at call
		// time rather than crashing.
		_, err := rt.Call(rt.NewCode("stub", nil), "call")
		if err == nil {
			t.Fatal("calling a nil-function code value succeeded")
		}
		var usage *skink.UsageError
		if !errors.As(err, &usage) {
			t.Errorf("nil-function error is %T, want *UsageError", err)
		}
	})
}

// TestWrongShape tests that core methods reject receivers of another shape.
func TestWrongShape(t *testing.T) {
	rt := testutils.RT()
	// A mapping blessed into an unrelated hierarchy cannot reach Sequence
	// methods at all, so the interesting case is a method reached through a
	// class hierarchy but applied to the wrong shape.
	_, err := skink.SequenceSize(rt, &skink.Call{Receiver: rt.NewMap(nil), Name: "size"})
	if err == nil {
		t.Error("sequence size on a mapping succeeded")
	}
	var usage *skink.UsageError
	if !errors.As(err, &usage) {
		t.Errorf("wrong-shape error is %T, want *UsageError", err)
	}
}
