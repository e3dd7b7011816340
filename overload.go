package skink

// An Op names an operator overload hook. Overloads are registered per class,
// in a table separate from the method table, and are inherited along the
// linearization like methods.
type Op int

const (
	// OpString is the stringification hook. It stands in for the value in
	// string contexts: the class view's name resolution, taint delegation,
	// deep equality, and the JSON and YAML serializers.
	OpString Op = iota
	// OpNumber is the numification hook.
	OpNumber
	// OpBool is the boolification hook.
	OpBool
)

// String returns the conventional name of the hook.
func (op Op) String() string {
	switch op {
	case OpString:
		return "string"
	case OpNumber:
		return "number"
	case OpBool:
		return "bool"
	}
	return "invalid"
}

// SetOverload registers an operator hook declared directly on this class,
// replacing any previous hook for the same operator.
func (c *Class) SetOverload(op Op, fn Fn) *Method {
	m := &Method{name: op.String(), fn: fn, owner: c}
	c.rt.mu.Lock()
	c.overloads[op] = m
	c.rt.mu.Unlock()
	return m
}

// Overload finds an operator hook declared directly on this class. Inherited
// hooks are not consulted; use Runtime.OverloadFor for that.
func (c *Class) Overload(op Op) (*Method, bool) {
	c.rt.mu.RLock()
	m, ok := c.overloads[op]
	c.rt.mu.RUnlock()
	return m, ok
}

// OverloadFor finds the first hook for op along c's linearization.
func (rt *Runtime) OverloadFor(c *Class, op Op) (*Method, bool) {
	lin, err := c.Linearize()
	if err != nil {
		return nil, false
	}
	for _, k := range lin {
		if m, ok := k.Overload(op); ok {
			return m, true
		}
	}
	return nil, false
}

// overloadValue invokes o's hook for op, resolved along its effective class
// linearization. The second result is false if no hook is registered.
func (rt *Runtime) overloadValue(o *Object, op Op) (*Object, bool, error) {
	c := rt.ClassOf(o)
	m, ok := rt.OverloadFor(c, op)
	if !ok {
		return nil, false, nil
	}
	call := &Call{
		Receiver: o,
		Name:     op.String(),
		Class:    c,
		Context:  m.Owner(),
	}
	v, err := m.fn(rt, call)
	if err != nil {
		return nil, true, err
	}
	if v == nil {
		return nil, true, Usagef("%s overload on class %s returned no value", op, c.Name())
	}
	return v, true, nil
}
