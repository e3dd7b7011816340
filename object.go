package skink

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Object is the basic boxed value of the runtime. Every value is an Object.
//
// Always use a Runtime constructor (NewString, NewList, FromInterface, and so
// on) to obtain new objects. Creating objects directly will result in
// arbitrary failures.
type Object struct {
	// Mutex is a lock which must be held when accessing the value of the
	// object if it is or may be mutable.
	sync.Mutex

	// value is the object's shape-specific representation.
	value value
	// class is the class this object is blessed into, or nil if the object
	// is unblessed.
	class *Class
	// tainted marks the object's content as originating from an untrusted
	// source. Only meaningful on scalars; containers participate in taint
	// through overload hooks.
	tainted bool

	// id is the object's unique ID.
	id uintptr
}

// value is the shape-specific representation of an object. Implementations
// are scalarValue, *listValue, *mapValue, and *codeValue.
type value interface {
	reftype() RefType
}

// RefType is the storage-shape tag of an object.
type RefType int

const (
	// RefScalar is the shape of single values: undef, booleans, numbers,
	// text, and byte strings.
	RefScalar RefType = iota
	// RefSequence is the shape of ordered element lists.
	RefSequence
	// RefMapping is the shape of string-keyed tables.
	RefMapping
	// RefCode is the shape of callable values.
	RefCode
)

// String returns the conventional name of the shape.
func (r RefType) String() string {
	switch r {
	case RefScalar:
		return "scalar"
	case RefSequence:
		return "sequence"
	case RefMapping:
		return "mapping"
	case RefCode:
		return "code"
	}
	return "invalid"
}

// UniqueID returns the object's unique ID. The ID is nonzero, never changes,
// and is never shared with another live object, but it carries no information
// about the object's content.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// RefType returns the object's storage shape.
func (o *Object) RefType() RefType {
	return o.value.reftype()
}

// Blessed returns the class the object is blessed into. The second result is
// false for unblessed objects.
func (o *Object) Blessed() (*Class, bool) {
	o.Lock()
	c := o.class
	o.Unlock()
	return c, c != nil
}

// idcounter is the global counter for object and class IDs. All accesses to
// this must be atomic.
var idcounter uintptr

// nextID increments the ID counter and returns its value as a unique ID for
// a new object or class.
func nextID() uintptr {
	return atomic.AddUintptr(&idcounter, 1)
}

// newObject wraps a shape value in a fresh Object.
func (rt *Runtime) newObject(v value) *Object {
	return &Object{value: v, id: nextID()}
}

// Bless binds o to class c. Any shape may be blessed. Blessing replaces a
// previous binding. The class must come from this runtime's registry.
func (rt *Runtime) Bless(o *Object, c *Class) error {
	if c == nil {
		return Usagef("cannot bless into nil class")
	}
	if c.rt != rt {
		return Usagef("class %s belongs to a different runtime", c.Name())
	}
	o.Lock()
	o.class = c
	o.Unlock()
	Logger().Debug("blessed object",
		zap.Uintptr("object", o.UniqueID()),
		zap.String("class", c.Name()),
		zap.Stringer("runtime", rt.ID()))
	return nil
}

// ClassOf returns the effective class of o: the class it is blessed into, or
// the core class of its shape if it is unblessed.
func (rt *Runtime) ClassOf(o *Object) *Class {
	if c, ok := o.Blessed(); ok {
		return c
	}
	return rt.CoreClass(o.RefType())
}

// initObject builds the universal root class. Its methods are available on
// every value but are excluded from the default method enumeration.
func (rt *Runtime) initObject() *Class {
	c := rt.bootClass(RootClassName)
	c.Define("can", ObjectCan)
	c.Define("does", ObjectDoes)
	c.Define("isa", ObjectIsa)
	c.Define("version", ObjectVersion)
	return c
}

// ObjectIsa is a runtime method. It takes a class name and returns whether
// the receiver's class linearization contains a class of that name.
//
// isa(name)
func ObjectIsa(rt *Runtime, call *Call) (*Object, error) {
	name, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	lin, err := rt.ClassOf(call.Receiver).Linearize()
	if err != nil {
		return nil, err
	}
	for _, k := range lin {
		if k.Name() == name {
			return rt.NewBool(true), nil
		}
	}
	return rt.NewBool(false), nil
}

// ObjectCan is a runtime method. It takes a method name and returns whether
// the receiver can respond to it.
//
// can(name)
func ObjectCan(rt *Runtime, call *Call) (*Object, error) {
	name, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	_, err = rt.resolve(rt.ClassOf(call.Receiver), name)
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			return rt.NewBool(false), nil
		}
		return nil, err
	}
	return rt.NewBool(true), nil
}

// ObjectDoes is a runtime method. It is the role predicate; a class that is
// not composed from roles answers it exactly as isa.
//
// does(name)
func ObjectDoes(rt *Runtime, call *Call) (*Object, error) {
	return ObjectIsa(rt, call)
}

// ObjectVersion is a runtime method. It returns the receiver's class version
// datum, or undef if none is set.
//
// version
func ObjectVersion(rt *Runtime, call *Call) (*Object, error) {
	v := rt.ClassOf(call.Receiver).Version()
	if v == "" {
		return rt.NewUndef(), nil
	}
	return rt.NewString(v), nil
}
