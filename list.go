package skink

import "strings"

// listValue is the shape value of sequences.
type listValue struct {
	elems []*Object
}

func (*listValue) reftype() RefType {
	return RefSequence
}

// NewList creates a sequence holding the given elements.
func (rt *Runtime) NewList(elems ...*Object) *Object {
	return rt.newObject(&listValue{elems: append([]*Object(nil), elems...)})
}

// Len returns the number of elements of a sequence, the number of entries of
// a mapping, or zero for other shapes.
func (o *Object) Len() int {
	o.Lock()
	defer o.Unlock()
	switch v := o.value.(type) {
	case *listValue:
		return len(v.elems)
	case *mapValue:
		return len(v.m)
	}
	return 0
}

// At returns the sequence element at index n, or nil if o is not a sequence
// or n is out of range.
func (o *Object) At(n int) *Object {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*listValue)
	if !ok || n < 0 || n >= len(v.elems) {
		return nil
	}
	return v.elems[n]
}

// SetAt replaces the sequence element at index n.
func (o *Object) SetAt(n int, e *Object) error {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*listValue)
	if !ok {
		return Usagef("not a sequence: %v", o.value.reftype())
	}
	if n < 0 || n >= len(v.elems) {
		return Usagef("index %d out of range for sequence of %d", n, len(v.elems))
	}
	v.elems[n] = e
	return nil
}

// Append adds elements to the end of a sequence.
func (o *Object) Append(elems ...*Object) error {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*listValue)
	if !ok {
		return Usagef("not a sequence: %v", o.value.reftype())
	}
	v.elems = append(v.elems, elems...)
	return nil
}

// elements returns a snapshot of a sequence's element slice.
func (o *Object) elements() []*Object {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*listValue)
	if !ok {
		return nil
	}
	return append([]*Object(nil), v.elems...)
}

// initSequence builds the core class of unblessed sequences.
func (rt *Runtime) initSequence() *Class {
	c := rt.bootClass("Sequence")
	c.Define("at", SequenceAt)
	c.Define("join", SequenceJoin)
	c.Define("push", SequencePush)
	c.Define("reverse", SequenceReverse)
	c.Define("size", SequenceSize)
	return c
}

// SequenceSize is a runtime method. It returns the number of elements.
//
// size
func SequenceSize(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefSequence {
		return nil, Usagef("size: receiver must be a sequence")
	}
	return rt.NewNumber(float64(call.Receiver.Len())), nil
}

// SequenceAt is a runtime method. It returns the element at the given index,
// or undef when the index is out of range.
//
// at(index)
func SequenceAt(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefSequence {
		return nil, Usagef("at: receiver must be a sequence")
	}
	n, err := call.NumberArg(0)
	if err != nil {
		return nil, err
	}
	e := call.Receiver.At(int(n))
	if e == nil {
		return rt.NewUndef(), nil
	}
	return e, nil
}

// SequencePush is a runtime method. It appends the arguments and returns the
// new size.
//
// push(elements...)
func SequencePush(rt *Runtime, call *Call) (*Object, error) {
	if err := call.Receiver.Append(call.Args...); err != nil {
		return nil, err
	}
	return rt.NewNumber(float64(call.Receiver.Len())), nil
}

// SequenceJoin is a runtime method. It concatenates the elements' text with
// a separator, which defaults to the empty string.
//
// join(separator)
func SequenceJoin(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefSequence {
		return nil, Usagef("join: receiver must be a sequence")
	}
	sep := ""
	if call.ArgCount() > 0 {
		var err error
		sep, err = call.TextArg(0)
		if err != nil {
			return nil, err
		}
	}
	elems := call.Receiver.elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		if e.RefType() != RefScalar {
			return nil, Usagef("join: element %d is a %v, not a scalar", i, e.RefType())
		}
		parts[i] = e.Text()
	}
	return rt.NewString(strings.Join(parts, sep)), nil
}

// SequenceReverse is a runtime method. It returns a new sequence with the
// elements in reverse order.
//
// reverse
func SequenceReverse(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefSequence {
		return nil, Usagef("reverse: receiver must be a sequence")
	}
	elems := call.Receiver.elements()
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	return rt.NewList(elems...), nil
}
