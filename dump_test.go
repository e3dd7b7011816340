package skink_test

import (
	"errors"
	"testing"

	"github.com/emmelopod/skink"
	"github.com/emmelopod/skink/testutils"
)

// TestDumpPerl tests the Perl-literal rendering.
func TestDumpPerl(t *testing.T) {
	rt := testutils.RT()
	cases := map[string]struct {
		o    *skink.Object
		want string
	}{
		"Undef":     {rt.NewUndef(), "undef"},
		"True":      {rt.NewBool(true), "1"},
		"False":     {rt.NewBool(false), "''"},
		"Number":    {rt.NewNumber(300), "300"},
		"Fraction":  {rt.NewNumber(0.5), "0.5"},
		"Text":      {rt.NewString("chair"), "'chair'"},
		"Quoting":   {rt.NewString(`it's a \`), `'it\'s a \\'`},
		"EmptyList": {rt.NewList(), "[]"},
		"EmptyMap":  {rt.NewMap(nil), "{}"},
		"List":      {rt.NewList(rt.NewNumber(250), rt.NewNumber(255)), "[ 250, 255 ]"},
		"Map":       {furniture(rt), "{ 'chair' => 50, 'table' => 300 }"},
		"Code":      {rt.NewCode("f", nil), `sub { "DUMMY" }`},
		"Nested": {
			rt.NewMap(map[string]*skink.Object{
				"table": rt.NewList(rt.NewNumber(250), rt.NewNumber(255)),
			}),
			"{ 'table' => [ 250, 255 ] }",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := rt.Meta(c.o).AsPerl()
			if err != nil {
				t.Fatalf("as_perl: %v", err)
			}
			if s != c.want {
				t.Errorf("as_perl = %q, want %q", s, c.want)
			}
		})
	}
}

// TestDumpPerlBlessed tests that the Perl format preserves class bindings.
func TestDumpPerlBlessed(t *testing.T) {
	f := testutils.NewFixture(t)
	rt := f.RT
	o := furniture(rt)
	if err := rt.Bless(o, f.Dog); err != nil {
		t.Fatalf("bless: %v", err)
	}
	s, err := rt.Meta(o).AsPerl()
	if err != nil {
		t.Fatalf("as_perl: %v", err)
	}
	want := "bless( { 'chair' => 50, 'table' => 300 }, 'Dog' )"
	if s != want {
		t.Errorf("as_perl = %q, want %q", s, want)
	}
}

// TestDumpJSON tests the JSON rendering and that dump(json) and as_json
// agree byte for byte.
func TestDumpJSON(t *testing.T) {
	rt := testutils.RT()
	cases := map[string]struct {
		o    *skink.Object
		want string
	}{
		"Undef":  {rt.NewUndef(), "null"},
		"Bool":   {rt.NewBool(true), "true"},
		"Number": {rt.NewNumber(50), "50"},
		"Text":   {rt.NewString("chair"), `"chair"`},
		"List":   {rt.NewList(rt.NewNumber(1), rt.NewString("two")), `[1,"two"]`},
		"Map":    {furniture(rt), `{"chair":50,"table":300}`},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := rt.Meta(c.o).AsJSON()
			if err != nil {
				t.Fatalf("as_json: %v", err)
			}
			if s != c.want {
				t.Errorf("as_json = %q, want %q", s, c.want)
			}
			d, err := rt.Meta(c.o).Dump(skink.DumpOpts{Format: skink.FormatJSON})
			if err != nil {
				t.Fatalf("dump: %v", err)
			}
			if d != s {
				t.Errorf("dump(json) = %q differs from as_json = %q", d, s)
			}
		})
	}
}

// TestDumpYAML tests the YAML rendering with sorted keys.
func TestDumpYAML(t *testing.T) {
	rt := testutils.RT()
	s, err := rt.Meta(furniture(rt)).AsYAML()
	if err != nil {
		t.Fatalf("as_yaml: %v", err)
	}
	want := "chair: 50\ntable: 300\n"
	if s != want {
		t.Errorf("as_yaml = %q, want %q", s, want)
	}
	d, err := rt.Meta(furniture(rt)).Dump(skink.DumpOpts{Format: skink.FormatYAML})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if d != s {
		t.Errorf("dump(yaml) = %q differs from as_yaml = %q", d, s)
	}
}

// TestDumpOverloaded tests that JSON and YAML render a string-overloaded
// value as its string form, while Perl keeps the structure and class.
func TestDumpOverloaded(t *testing.T) {
	f := testutils.NewFixture(t)
	rt := f.RT
	box := f.Box(t, f.Stringish, rt.NewString("hello"))
	s, err := rt.Meta(box).AsJSON()
	if err != nil {
		t.Fatalf("as_json: %v", err)
	}
	if s != `"hello"` {
		t.Errorf("as_json = %q, want %q", s, `"hello"`)
	}
	y, err := rt.Meta(box).AsYAML()
	if err != nil {
		t.Fatalf("as_yaml: %v", err)
	}
	if y != "hello\n" {
		t.Errorf("as_yaml = %q, want %q", y, "hello\n")
	}
	p, err := rt.Meta(box).AsPerl()
	if err != nil {
		t.Fatalf("as_perl: %v", err)
	}
	want := "bless( { 'value' => 'hello' }, 'Stringish' )"
	if p != want {
		t.Errorf("as_perl = %q, want %q", p, want)
	}
}

// TestDumpErrors tests the failure policy of each writer.
func TestDumpErrors(t *testing.T) {
	rt := testutils.RT()
	t.Run("CodeAsData", func(t *testing.T) {
		for _, format := range []skink.DumpFormat{skink.FormatJSON, skink.FormatYAML} {
			_, err := rt.Meta(rt.NewCode("f", nil)).Dump(skink.DumpOpts{Format: format})
			if err == nil {
				t.Errorf("%v of code value succeeded", format)
				continue
			}
			var usage *skink.UsageError
			if !errors.As(err, &usage) {
				t.Errorf("%v error is %T, want *UsageError", format, err)
			}
		}
	})
	t.Run("Cycle", func(t *testing.T) {
		o := rt.NewMap(nil)
		if err := o.MapPut("self", o); err != nil {
			t.Fatalf("building cycle: %v", err)
		}
		for _, format := range []skink.DumpFormat{skink.FormatPerl, skink.FormatJSON, skink.FormatYAML} {
			_, err := rt.Meta(o).Dump(skink.DumpOpts{Format: format})
			if err == nil {
				t.Errorf("%v of cyclic structure succeeded", format)
				continue
			}
			var cycle *skink.CycleError
			if !errors.As(err, &cycle) {
				t.Errorf("%v error is %T, want *CycleError", format, err)
			}
		}
	})
	t.Run("OverloadCycle", func(t *testing.T) {
		// A string hook that yields its own receiver must be detected
		// as a cycle, not followed forever.
		f := testutils.NewFixture(t)
		box := f.RT.NewMap(nil)
		if err := box.MapPut("value", box); err != nil {
			t.Fatalf("building cycle: %v", err)
		}
		if err := f.RT.Bless(box, f.Stringish); err != nil {
			t.Fatalf("bless: %v", err)
		}
		for _, format := range []skink.DumpFormat{skink.FormatPerl, skink.FormatJSON, skink.FormatYAML} {
			_, err := f.RT.Meta(box).Dump(skink.DumpOpts{Format: format})
			if err == nil {
				t.Errorf("%v of self-yielding overload succeeded", format)
				continue
			}
			var cycle *skink.CycleError
			if !errors.As(err, &cycle) {
				t.Errorf("%v error is %T, want *CycleError", format, err)
			}
		}
	})
	t.Run("SharedIsNotACycle", func(t *testing.T) {
		// The same object twice in one structure is a DAG, not a cycle.
		shared := furniture(rt)
		o := rt.NewList(shared, shared)
		s, err := rt.Meta(o).AsJSON()
		if err != nil {
			t.Fatalf("as_json: %v", err)
		}
		want := `[{"chair":50,"table":300},{"chair":50,"table":300}]`
		if s != want {
			t.Errorf("as_json = %q, want %q", s, want)
		}
	})
}
