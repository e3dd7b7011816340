package skink

import "sort"

// A Class is the descriptor of a named type: its declared parents, method
// table, overload hooks, version datum, and linearization mode. Obtain
// classes from Runtime.DefineClass or Runtime.LookupClass.
type Class struct {
	rt *Runtime
	// id is the class's unique ID, drawn from the same counter as object
	// IDs. It keys visited sets during hierarchy walks.
	id uintptr
	// name is the registry name. It never changes.
	name string

	// The runtime's registry lock guards all remaining fields.

	// parents is the declared parent list, in order.
	parents []*Class
	// methods is the table of operations declared directly on this class.
	methods map[string]*Method
	// overloads is the table of operator hooks declared directly on this
	// class.
	overloads map[Op]*Method
	// version is the class version datum, or empty.
	version string
	// mro selects the linearization algorithm.
	mro MROMode

	// lin is the cached linearization, valid while linGen matches the
	// runtime generation.
	lin    []*Class
	linGen uint64
	linOK  bool
}

// A Method is one named operation in a class's method or overload table.
type Method struct {
	name  string
	fn    Fn
	owner *Class
}

// Name returns the name under which the method was defined.
func (m *Method) Name() string {
	return m.name
}

// Owner returns the class whose table declares the method.
func (m *Method) Owner() *Class {
	return m.owner
}

// Name returns the class's registry name.
func (c *Class) Name() string {
	return c.name
}

// Parents returns the declared direct parents, exactly as declared. The
// result is empty for a class declared with no parents, even though such a
// class still linearizes to the root.
func (c *Class) Parents() []*Class {
	c.rt.mu.RLock()
	ps := append([]*Class(nil), c.parents...)
	c.rt.mu.RUnlock()
	return ps
}

// AppendParent adds p to the end of the declared parent list. The edit
// invalidates every cached linearization in the runtime. Appending a class
// to its own parent list is rejected.
func (c *Class) AppendParent(p *Class) error {
	if p == nil {
		return Usagef("class %s: nil parent", c.name)
	}
	if p == c {
		return Usagef("class %s cannot be its own parent", c.name)
	}
	if p.rt != c.rt {
		return Usagef("class %s: parent %s belongs to a different runtime", c.name, p.Name())
	}
	c.rt.mu.Lock()
	c.parents = append(c.parents, p)
	c.rt.mu.Unlock()
	c.rt.invalidate()
	return nil
}

// Define adds a method declared directly on this class, replacing any
// previous method of the same name.
func (c *Class) Define(name string, fn Fn) *Method {
	m := &Method{name: name, fn: fn, owner: c}
	c.rt.mu.Lock()
	c.methods[name] = m
	c.rt.mu.Unlock()
	return m
}

// Method finds a method declared directly on this class. Inherited methods
// are not consulted; dispatch through Runtime.Call for that.
func (c *Class) Method(name string) (*Method, bool) {
	c.rt.mu.RLock()
	m, ok := c.methods[name]
	c.rt.mu.RUnlock()
	return m, ok
}

// MethodNames returns the sorted names of the methods declared directly on
// this class.
func (c *Class) MethodNames() []string {
	c.rt.mu.RLock()
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	c.rt.mu.RUnlock()
	sort.Strings(names)
	return names
}

// SetVersion sets the class version datum. It is surfaced by the root
// version method and appears in the class's symbol table as the VERSION data
// entry.
func (c *Class) SetVersion(v string) {
	c.rt.mu.Lock()
	c.version = v
	c.rt.mu.Unlock()
}

// Version returns the class version datum, or empty if none is set.
func (c *Class) Version() string {
	c.rt.mu.RLock()
	v := c.version
	c.rt.mu.RUnlock()
	return v
}
