package skink

// codeValue is the shape value of callable objects.
type codeValue struct {
	name string
	fn   Fn
}

func (*codeValue) reftype() RefType {
	return RefCode
}

// NewCode creates a code value wrapping fn under the given name. A nil fn
// yields a named placeholder that errors when invoked.
func (rt *Runtime) NewCode(name string, fn Fn) *Object {
	return rt.newObject(&codeValue{name: name, fn: fn})
}

// CodeName returns the name a code value was created under, or the empty
// string for other shapes.
func (o *Object) CodeName() string {
	o.Lock()
	defer o.Unlock()
	if v, ok := o.value.(*codeValue); ok {
		return v.name
	}
	return ""
}

// CallCode invokes a code value with the given arguments. The code value
// itself is the call's receiver.
func (rt *Runtime) CallCode(o *Object, args ...*Object) (*Object, error) {
	o.Lock()
	v, ok := o.value.(*codeValue)
	o.Unlock()
	if !ok {
		return nil, Usagef("cannot call a %v", o.RefType())
	}
	if v.fn == nil {
		return nil, Usagef("code value %q has no function", v.name)
	}
	call := &Call{
		Receiver: o,
		Name:     v.name,
		Args:     args,
		Class:    rt.ClassOf(o),
	}
	return v.fn(rt, call)
}

// initCode builds the core class of unblessed code values.
func (rt *Runtime) initCode() *Class {
	c := rt.bootClass("Code")
	c.Define("call", CodeCall)
	c.Define("name", CodeName)
	return c
}

// CodeCall is a runtime method. It invokes the receiver with the forwarded
// arguments.
//
// call(arguments...)
func CodeCall(rt *Runtime, call *Call) (*Object, error) {
	return rt.CallCode(call.Receiver, call.Args...)
}

// CodeName is a runtime method. It returns the name the receiver was created
// under.
//
// name
func CodeName(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefCode {
		return nil, Usagef("name: receiver must be code")
	}
	return rt.NewString(call.Receiver.CodeName()), nil
}
