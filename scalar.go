package skink

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ScalarKind is the kind of value a scalar currently holds.
type ScalarKind int

const (
	// KindUndef is the undefined value.
	KindUndef ScalarKind = iota
	// KindBool is a boolean.
	KindBool
	// KindNumber is a float64 number.
	KindNumber
	// KindText is UTF-8 text.
	KindText
	// KindBytes is a raw octet string.
	KindBytes
)

// String returns the conventional name of the kind.
func (k ScalarKind) String() string {
	switch k {
	case KindUndef:
		return "undef"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	}
	return "invalid"
}

// scalarValue is the shape value of scalars.
type scalarValue struct {
	kind  ScalarKind
	num   float64
	b     bool
	text  string
	bytes []byte
}

func (*scalarValue) reftype() RefType {
	return RefScalar
}

// NewString creates a text scalar.
func (rt *Runtime) NewString(s string) *Object {
	return rt.newObject(&scalarValue{kind: KindText, text: s})
}

// NewBytes creates a byte-string scalar holding a copy of b.
func (rt *Runtime) NewBytes(b []byte) *Object {
	return rt.newObject(&scalarValue{kind: KindBytes, bytes: append([]byte(nil), b...)})
}

// NewNumber creates a number scalar.
func (rt *Runtime) NewNumber(f float64) *Object {
	return rt.newObject(&scalarValue{kind: KindNumber, num: f})
}

// NewBool creates a boolean scalar.
func (rt *Runtime) NewBool(b bool) *Object {
	return rt.newObject(&scalarValue{kind: KindBool, b: b})
}

// NewUndef creates an undefined scalar.
func (rt *Runtime) NewUndef() *Object {
	return rt.newObject(&scalarValue{kind: KindUndef})
}

// Kind returns the kind of value a scalar holds. Non-scalars report
// KindUndef; check RefType first when the shape is not known.
func (o *Object) Kind() ScalarKind {
	o.Lock()
	defer o.Unlock()
	if s, ok := o.value.(*scalarValue); ok {
		return s.kind
	}
	return KindUndef
}

// Text returns the scalar's content as text. Byte strings decode as Latin-1.
// Numbers format in their shortest round-trip form. Booleans read as "1" or
// the empty string, undef as the empty string. Non-scalars read as empty.
func (o *Object) Text() string {
	o.Lock()
	defer o.Unlock()
	s, ok := o.value.(*scalarValue)
	if !ok {
		return ""
	}
	return s.textValue()
}

func (s *scalarValue) textValue() string {
	switch s.kind {
	case KindText:
		return s.text
	case KindBytes:
		d := charmap.ISO8859_1.NewDecoder()
		b, _ := d.Bytes(s.bytes)
		return string(b)
	case KindNumber:
		return formatNumber(s.num)
	case KindBool:
		if s.b {
			return "1"
		}
		return ""
	}
	return ""
}

// Number returns the scalar's content as a number. Text that looks like a
// number parses; other text reads as zero. Booleans read as 1 or 0.
func (o *Object) Number() float64 {
	o.Lock()
	defer o.Unlock()
	s, ok := o.value.(*scalarValue)
	if !ok {
		return 0
	}
	switch s.kind {
	case KindNumber:
		return s.num
	case KindBool:
		if s.b {
			return 1
		}
		return 0
	case KindText, KindBytes:
		f, _ := looksLikeNumber(s.textValue())
		return f
	}
	return 0
}

// Bool returns the scalar's content as a truth value: undef, zero, and empty
// text are false.
func (o *Object) Bool() bool {
	o.Lock()
	defer o.Unlock()
	s, ok := o.value.(*scalarValue)
	if !ok {
		return true
	}
	switch s.kind {
	case KindBool:
		return s.b
	case KindNumber:
		return s.num != 0
	case KindText:
		return s.text != "" && s.text != "0"
	case KindBytes:
		return len(s.bytes) > 0 && string(s.bytes) != "0"
	}
	return false
}

// BytesValue returns the scalar's content as raw octets. Text encodes as
// Latin-1; a character above U+00FF is a usage error ("wide character").
func (o *Object) BytesValue() ([]byte, error) {
	o.Lock()
	defer o.Unlock()
	s, ok := o.value.(*scalarValue)
	if !ok {
		return nil, Usagef("cannot read a %v as bytes", o.value.reftype())
	}
	if s.kind == KindBytes {
		return append([]byte(nil), s.bytes...), nil
	}
	e := charmap.ISO8859_1.NewEncoder()
	b, err := e.Bytes([]byte(s.textValue()))
	if err != nil {
		return nil, Usagef("wide character in byte conversion: %w", err)
	}
	return b, nil
}

// scalar returns the receiver's scalar value, or a usage error for other
// shapes.
func (o *Object) scalar() (*scalarValue, error) {
	s, ok := o.value.(*scalarValue)
	if !ok {
		return nil, Usagef("not a scalar: %v", o.value.reftype())
	}
	return s, nil
}

// SetText replaces a scalar's content with text.
func (o *Object) SetText(t string) error {
	o.Lock()
	defer o.Unlock()
	s, err := o.scalar()
	if err != nil {
		return err
	}
	*s = scalarValue{kind: KindText, text: t}
	return nil
}

// SetBytes replaces a scalar's content with a copy of b.
func (o *Object) SetBytes(b []byte) error {
	o.Lock()
	defer o.Unlock()
	s, err := o.scalar()
	if err != nil {
		return err
	}
	*s = scalarValue{kind: KindBytes, bytes: append([]byte(nil), b...)}
	return nil
}

// SetNumber replaces a scalar's content with a number.
func (o *Object) SetNumber(f float64) error {
	o.Lock()
	defer o.Unlock()
	s, err := o.scalar()
	if err != nil {
		return err
	}
	*s = scalarValue{kind: KindNumber, num: f}
	return nil
}

// SetBool replaces a scalar's content with a boolean.
func (o *Object) SetBool(b bool) error {
	o.Lock()
	defer o.Unlock()
	s, err := o.scalar()
	if err != nil {
		return err
	}
	*s = scalarValue{kind: KindBool, b: b}
	return nil
}

// SetUndef replaces a scalar's content with undef.
func (o *Object) SetUndef() error {
	o.Lock()
	defer o.Unlock()
	s, err := o.scalar()
	if err != nil {
		return err
	}
	*s = scalarValue{kind: KindUndef}
	return nil
}

// formatNumber renders a float in its shortest form that parses back to the
// same value. Integral values render without exponent notation where
// possible.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// looksLikeNumber reports whether s reads as a decimal number after
// stripping surrounding whitespace: an optional sign, digits with an
// optional fraction, and an optional decimal exponent. Infinities, NaN, and
// radix prefixes do not qualify.
func looksLikeNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		rest = rest[1:]
	}
	digits := func(t string) (string, int) {
		i := 0
		for i < len(t) && t[i] >= '0' && t[i] <= '9' {
			i++
		}
		return t[i:], i
	}
	rest, n := digits(rest)
	frac := 0
	if rest != "" && rest[0] == '.' {
		rest, frac = digits(rest[1:])
	}
	if n+frac == 0 {
		return 0, false
	}
	if rest != "" && (rest[0] == 'e' || rest[0] == 'E') {
		rest = rest[1:]
		if rest != "" && (rest[0] == '+' || rest[0] == '-') {
			rest = rest[1:]
		}
		var e int
		rest, e = digits(rest)
		if e == 0 {
			return 0, false
		}
	}
	if rest != "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// initScalar builds the core class of unblessed scalars.
func (rt *Runtime) initScalar() *Class {
	c := rt.bootClass("Scalar")
	c.Define("chomp", ScalarChomp)
	c.Define("defined", ScalarDefined)
	c.Define("lc", ScalarLc)
	c.Define("length", ScalarLength)
	c.Define("uc", ScalarUc)
	return c
}

// ScalarLength is a runtime method. It returns the number of characters in
// the receiver's text.
//
// length
func ScalarLength(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefScalar {
		return nil, Usagef("length: receiver must be a scalar")
	}
	if call.Receiver.Kind() == KindUndef {
		return rt.NewUndef(), nil
	}
	return rt.NewNumber(float64(utf8.RuneCountInString(call.Receiver.Text()))), nil
}

// ScalarUc is a runtime method. It returns the receiver's text uppercased.
//
// uc
func ScalarUc(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefScalar {
		return nil, Usagef("uc: receiver must be a scalar")
	}
	return rt.NewString(strings.ToUpper(call.Receiver.Text())), nil
}

// ScalarLc is a runtime method. It returns the receiver's text lowercased.
//
// lc
func ScalarLc(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefScalar {
		return nil, Usagef("lc: receiver must be a scalar")
	}
	return rt.NewString(strings.ToLower(call.Receiver.Text())), nil
}

// ScalarChomp is a runtime method. It removes one trailing newline from the
// receiver's text in place and returns the number of characters removed.
//
// chomp
func ScalarChomp(rt *Runtime, call *Call) (*Object, error) {
	o := call.Receiver
	if o.RefType() != RefScalar {
		return nil, Usagef("chomp: receiver must be a scalar")
	}
	if o.Kind() != KindText {
		return rt.NewNumber(0), nil
	}
	t := o.Text()
	if !strings.HasSuffix(t, "\n") {
		return rt.NewNumber(0), nil
	}
	if err := o.SetText(strings.TrimSuffix(t, "\n")); err != nil {
		return nil, err
	}
	return rt.NewNumber(1), nil
}

// ScalarDefined is a runtime method. It reports whether the receiver holds a
// defined value.
//
// defined
func ScalarDefined(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefScalar {
		return rt.NewBool(true), nil
	}
	return rt.NewBool(call.Receiver.Kind() != KindUndef), nil
}
