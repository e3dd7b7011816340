package skink_test

import (
	"testing"

	"github.com/emmelopod/skink"
	"github.com/emmelopod/skink/testutils"
)

// TestFromInterface tests ingestion of plain Go data, verified through the
// JSON rendering.
func TestFromInterface(t *testing.T) {
	rt := testutils.RT()
	cases := map[string]struct {
		v    interface{}
		want string
	}{
		"Nil":    {nil, "null"},
		"Bool":   {true, "true"},
		"Int":    {300, "300"},
		"Float":  {0.5, "0.5"},
		"String": {"chair", `"chair"`},
		"Slice":  {[]interface{}{1, "two", nil}, `[1,"two",null]`},
		"Map": {
			map[string]interface{}{"table": 300, "chair": 50},
			`{"chair":50,"table":300}`,
		},
		"Nested": {
			map[string]interface{}{
				"rooms": []interface{}{
					map[string]interface{}{"chair": 50},
				},
			},
			`{"rooms":[{"chair":50}]}`,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			o, err := rt.FromInterface(c.v)
			if err != nil {
				t.Fatalf("ingesting: %v", err)
			}
			s, err := rt.Meta(o).AsJSON()
			if err != nil {
				t.Fatalf("as_json: %v", err)
			}
			if s != c.want {
				t.Errorf("as_json = %q, want %q", s, c.want)
			}
		})
	}
	t.Run("Unsupported", func(t *testing.T) {
		if _, err := rt.FromInterface(make(chan int)); err == nil {
			t.Error("ingesting a channel succeeded")
		}
	})
}

// TestDecodeJSON tests that parsing and re-rendering JSON is stable.
func TestDecodeJSON(t *testing.T) {
	rt := testutils.RT()
	o, err := rt.DecodeJSON([]byte(`{"table": [250, 255], "chair": 50}`))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	s, err := rt.Meta(o).AsJSON()
	if err != nil {
		t.Fatalf("as_json: %v", err)
	}
	want := `{"chair":50,"table":[250,255]}`
	if s != want {
		t.Errorf("as_json = %q, want %q", s, want)
	}
	if _, err := rt.DecodeJSON([]byte("{nope")); err == nil {
		t.Error("decoding malformed JSON succeeded")
	}
}

// TestDecodeYAML tests ingestion of YAML documents, including yaml.v2's
// interface-keyed mappings.
func TestDecodeYAML(t *testing.T) {
	rt := testutils.RT()
	doc := "chair: 50\ntable:\n  - 250\n  - 255\n"
	o, err := rt.DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if o.RefType() != skink.RefMapping {
		t.Fatalf("decoded shape is %v, want mapping", o.RefType())
	}
	s, err := rt.Meta(o).AsJSON()
	if err != nil {
		t.Fatalf("as_json: %v", err)
	}
	want := `{"chair":50,"table":[250,255]}`
	if s != want {
		t.Errorf("as_json = %q, want %q", s, want)
	}
	y, err := rt.Meta(o).AsYAML()
	if err != nil {
		t.Fatalf("as_yaml: %v", err)
	}
	wantY := "chair: 50\ntable:\n- 250\n- 255\n"
	if y != wantY {
		t.Errorf("as_yaml = %q, want %q", y, wantY)
	}
}
