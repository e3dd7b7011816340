package skink

import "sort"

// A Meta is the reflective handle over one subject. Metas are created fresh
// by each accessor call, cache nothing, and never add a name to the
// subject's own method namespace. A Meta does not extend its subject's
// lifetime beyond the call it is used in.
//
// The view chosen by the accessor directs the class-directed operations
// (Class, ISA, LinearISA, Methods, SymbolTable, Super). Value-directed
// operations (ID, the taint family, RefType, Checksum, IsEqual, and the dump
// family) always act on the subject regardless of view.
type Meta struct {
	rt      *Runtime
	subject *Object
	// classView reads the subject as a class name rather than a value.
	classView bool
}

// Meta returns the reflective handle over o in the instance view: o is
// treated as a data value, and class-directed operations use its own class.
func (rt *Runtime) Meta(o *Object) *Meta {
	return &Meta{rt: rt, subject: o}
}

// MetaClass returns the reflective handle over o in the class view:
// class-directed operations read o as a class name. Scalar text names a
// class directly; a blessed value with a string overload names the class its
// hook stringifies to.
func (rt *Runtime) MetaClass(o *Object) *Meta {
	return &Meta{rt: rt, subject: o, classView: true}
}

// Subject returns the object the handle is bound to.
func (m *Meta) Subject() *Object {
	return m.subject
}

// ID returns the subject's unique ID: nonzero, stable for the subject's
// lifetime, never shared with another live object, and independent of
// content.
func (m *Meta) ID() uintptr {
	return m.subject.UniqueID()
}

// RefType returns the subject's storage shape.
func (m *Meta) RefType() RefType {
	return m.subject.RefType()
}

// Class resolves the subject's class per the view. The instance view reports
// the subject's effective class; the class view reads the subject as a class
// name and looks it up, failing with a usage error if no such class is
// registered.
func (m *Meta) Class() (*Class, error) {
	if !m.classView {
		return m.rt.ClassOf(m.subject), nil
	}
	name, err := m.className()
	if err != nil {
		return nil, err
	}
	c, ok := m.rt.LookupClass(name)
	if !ok {
		return nil, Usagef("unknown class %q", name)
	}
	return c, nil
}

// className reads the subject as a class name.
func (m *Meta) className() (string, error) {
	o := m.subject
	if o.RefType() == RefScalar {
		if o.Kind() == KindUndef {
			return "", Usagef("undef is not a class name")
		}
		return o.Text(), nil
	}
	v, ok, err := m.rt.overloadValue(o, OpString)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", Usagef("a %v cannot name a class", o.RefType())
	}
	if v.RefType() != RefScalar {
		return "", Usagef("string overload on class %s produced a %v", m.rt.ClassOf(o).Name(), v.RefType())
	}
	return v.Text(), nil
}

// ISA returns the direct parents of the subject's class, exactly as
// declared. The result is empty for classes with no declared parents.
func (m *Meta) ISA() ([]*Class, error) {
	c, err := m.Class()
	if err != nil {
		return nil, err
	}
	return c.Parents(), nil
}

// LinearISA returns the full method-resolution order of the subject's class:
// the class itself first, ancestors in lookup order, the universal root
// last. It is never empty.
func (m *Meta) LinearISA() ([]*Class, error) {
	c, err := m.Class()
	if err != nil {
		return nil, err
	}
	return c.Linearize()
}

// MethodOpts configures Methods. The zero value asks for every method
// available on the class except those provided by the universal root.
type MethodOpts struct {
	// WithRoot includes the root class's methods.
	WithRoot bool
	// JustMine restricts to methods declared directly on the class,
	// overriding WithRoot and excluding everything inherited.
	JustMine bool
}

// Methods enumerates the names of the operations available on the subject's
// class, sorted. By default root-provided methods are excluded; see
// MethodOpts.
func (m *Meta) Methods(opts MethodOpts) ([]string, error) {
	c, err := m.Class()
	if err != nil {
		return nil, err
	}
	if opts.JustMine {
		return c.MethodNames(), nil
	}
	lin, err := c.Linearize()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, k := range lin {
		// The root is excluded as an ancestor, not as the subject
		// itself: its methods are its own, not inherited.
		if k == m.rt.Root && k != c && !opts.WithRoot {
			continue
		}
		for _, name := range k.MethodNames() {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SymbolTable returns a read-only snapshot of the namespace of the subject's
// class. The snapshot does not follow later edits to the class.
func (m *Meta) SymbolTable() (*SymbolTable, error) {
	c, err := m.Class()
	if err != nil {
		return nil, err
	}
	return c.symbolTable(), nil
}

// Super invokes the next definition of the running method past the one that
// supplied it. Resolution walks the linearization of the subject's class per
// the view, not of the class the running method was defined in, so a method
// inherited into a diamond resumes along the receiver's actual ancestry.
// When no further definition exists, Super fails with a usage error.
func (m *Meta) Super(call *Call, args ...*Object) (*Object, error) {
	if call == nil || call.Context == nil {
		return nil, Usagef("super: no running method context")
	}
	c, err := m.Class()
	if err != nil {
		return nil, err
	}
	lin, err := c.Linearize()
	if err != nil {
		return nil, err
	}
	next, ok := resolveAfter(lin, call.Context, call.Name)
	if !ok {
		return nil, Usagef("no superclass method %q for class %s past %s", call.Name, c.Name(), call.Context.Name())
	}
	sup := &Call{
		Receiver: m.subject,
		Name:     call.Name,
		Args:     args,
		Class:    c,
		Context:  next.Owner(),
	}
	return next.fn(m.rt, sup)
}
