package skink

import (
	"encoding/json"
	"math"
	"strings"

	"gopkg.in/yaml.v2"
)

// DumpFormat selects a serialization format.
type DumpFormat int

const (
	// FormatPerl is a Perl-literal rendering. It is the default and the
	// only format that preserves class bindings, via bless(...).
	FormatPerl DumpFormat = iota
	// FormatJSON is compact JSON with sorted keys.
	FormatJSON
	// FormatYAML is YAML with sorted keys.
	FormatYAML
)

// String returns the conventional name of the format.
func (f DumpFormat) String() string {
	switch f {
	case FormatPerl:
		return "perl"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "invalid"
}

// DumpOpts configures Dump. The zero value requests the Perl format.
type DumpOpts struct {
	Format DumpFormat
}

// Dump serializes the subject. It is the unified entry point; AsPerl,
// AsJSON, and AsYAML are fixed-format shorthands that produce identical
// output for the matching format. Self-referential structures fail with a
// CycleError in every format.
func (m *Meta) Dump(opts DumpOpts) (string, error) {
	switch opts.Format {
	case FormatPerl:
		var b strings.Builder
		if err := m.rt.dumpPerl(&b, m.subject, make(map[uintptr]bool)); err != nil {
			return "", err
		}
		return b.String(), nil
	case FormatJSON:
		tree, err := m.rt.dumpTree(m.subject, make(map[uintptr]bool), false)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(tree)
		if err != nil {
			return "", Usagef("encoding JSON: %w", err)
		}
		return string(b), nil
	case FormatYAML:
		tree, err := m.rt.dumpTree(m.subject, make(map[uintptr]bool), true)
		if err != nil {
			return "", err
		}
		b, err := yaml.Marshal(tree)
		if err != nil {
			return "", Usagef("encoding YAML: %w", err)
		}
		return string(b), nil
	}
	return "", Usagef("unknown dump format %d", int(opts.Format))
}

// AsPerl serializes the subject as a Perl literal.
func (m *Meta) AsPerl() (string, error) {
	return m.Dump(DumpOpts{Format: FormatPerl})
}

// AsJSON serializes the subject as compact JSON.
func (m *Meta) AsJSON() (string, error) {
	return m.Dump(DumpOpts{Format: FormatJSON})
}

// AsYAML serializes the subject as YAML.
func (m *Meta) AsYAML() (string, error) {
	return m.Dump(DumpOpts{Format: FormatYAML})
}

// dumpPerl writes a Perl literal for o. path holds the container IDs on the
// current descent, for cycle detection.
func (rt *Runtime) dumpPerl(b *strings.Builder, o *Object, path map[uintptr]bool) error {
	if c, ok := o.Blessed(); ok {
		b.WriteString("bless( ")
		if err := rt.dumpPerlValue(b, o, path); err != nil {
			return err
		}
		b.WriteString(", ")
		b.WriteString(quotePerl(c.Name()))
		b.WriteString(" )")
		return nil
	}
	return rt.dumpPerlValue(b, o, path)
}

func (rt *Runtime) dumpPerlValue(b *strings.Builder, o *Object, path map[uintptr]bool) error {
	switch o.RefType() {
	case RefScalar:
		switch o.Kind() {
		case KindUndef:
			b.WriteString("undef")
		case KindBool:
			if o.Bool() {
				b.WriteString("1")
			} else {
				b.WriteString("''")
			}
		case KindNumber:
			b.WriteString(formatNumber(o.Number()))
		default:
			b.WriteString(quotePerl(o.Text()))
		}
		return nil
	case RefCode:
		b.WriteString(`sub { "DUMMY" }`)
		return nil
	}
	id := o.UniqueID()
	if path[id] {
		return &CycleError{ID: id}
	}
	path[id] = true
	defer delete(path, id)
	switch o.RefType() {
	case RefSequence:
		elems := o.elements()
		if len(elems) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[ ")
		for i, e := range elems {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := rt.dumpPerl(b, e, path); err != nil {
				return err
			}
		}
		b.WriteString(" ]")
	case RefMapping:
		keys := o.MapKeys()
		if len(keys) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{ ")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quotePerl(k))
			b.WriteString(" => ")
			if err := rt.dumpPerl(b, o.MapAt(k), path); err != nil {
				return err
			}
		}
		b.WriteString(" }")
	}
	return nil
}

// quotePerl single-quotes a string, escaping backslashes and single quotes.
func quotePerl(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// dumpTree converts an object graph into plain Go data for the JSON and
// YAML encoders. A blessed value with a string overload is rendered as its
// string form; class bindings are otherwise dropped. Code values have no
// rendering in either format.
func (rt *Runtime) dumpTree(o *Object, path map[uintptr]bool, yamlStyle bool) (interface{}, error) {
	if _, ok := o.Blessed(); ok {
		if _, hooked := rt.OverloadFor(rt.ClassOf(o), OpString); hooked {
			// Following the hook result is a descent; a hook may
			// yield its own receiver.
			id := o.UniqueID()
			if path[id] {
				return nil, &CycleError{ID: id}
			}
			v, _, err := rt.overloadValue(o, OpString)
			if err != nil {
				return nil, err
			}
			path[id] = true
			defer delete(path, id)
			return rt.dumpTree(v, path, yamlStyle)
		}
	}
	switch o.RefType() {
	case RefScalar:
		switch o.Kind() {
		case KindUndef:
			return nil, nil
		case KindBool:
			return o.Bool(), nil
		case KindNumber:
			f := o.Number()
			if !yamlStyle && (math.IsInf(f, 0) || math.IsNaN(f)) {
				return nil, Usagef("cannot represent %v in JSON", f)
			}
			return f, nil
		default:
			return o.Text(), nil
		}
	case RefCode:
		return nil, Usagef("cannot represent a code value as data")
	}
	id := o.UniqueID()
	if path[id] {
		return nil, &CycleError{ID: id}
	}
	path[id] = true
	defer delete(path, id)
	switch o.RefType() {
	case RefSequence:
		elems := o.elements()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			v, err := rt.dumpTree(e, path, yamlStyle)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		keys := o.MapKeys()
		if yamlStyle {
			out := make(yaml.MapSlice, 0, len(keys))
			for _, k := range keys {
				v, err := rt.dumpTree(o.MapAt(k), path, yamlStyle)
				if err != nil {
					return nil, err
				}
				out = append(out, yaml.MapItem{Key: k, Value: v})
			}
			return out, nil
		}
		out := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			v, err := rt.dumpTree(o.MapAt(k), path, yamlStyle)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
}
