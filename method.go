package skink

// An Fn is a compiled method which can be executed against a runtime. Fns
// populate class method tables and overload tables.
type Fn func(rt *Runtime, call *Call) (*Object, error)

// A Call carries the context of one method activation.
type Call struct {
	// Receiver is the object the method was invoked on.
	Receiver *Object
	// Name is the name the method was invoked under.
	Name string
	// Args are the forwarded arguments.
	Args []*Object
	// Class is the class dispatch started from: the receiver's effective
	// class, or the named class under the class view.
	Class *Class
	// Context is the class whose table supplied the running method. Super
	// resumes resolution past it.
	Context *Class
}

// ArgCount returns the number of arguments.
func (c *Call) ArgCount() int {
	return len(c.Args)
}

// ArgAt returns the argument at position n, or nil if there is no such
// argument.
func (c *Call) ArgAt(n int) *Object {
	if n < 0 || n >= len(c.Args) {
		return nil
	}
	return c.Args[n]
}

// TextArg returns the argument at position n read as scalar text.
func (c *Call) TextArg(n int) (string, error) {
	a := c.ArgAt(n)
	if a == nil {
		return "", Usagef("%s: missing argument %d", c.Name, n)
	}
	if a.RefType() != RefScalar {
		return "", Usagef("%s: argument %d must be a scalar, not a %v", c.Name, n, a.RefType())
	}
	return a.Text(), nil
}

// NumberArg returns the argument at position n read as a number.
func (c *Call) NumberArg(n int) (float64, error) {
	a := c.ArgAt(n)
	if a == nil {
		return 0, Usagef("%s: missing argument %d", c.Name, n)
	}
	if a.RefType() != RefScalar {
		return 0, Usagef("%s: argument %d must be a scalar, not a %v", c.Name, n, a.RefType())
	}
	return a.Number(), nil
}

// Call resolves name along the receiver's effective class linearization and
// invokes it with the given arguments. An unknown method is a usage error.
func (rt *Runtime) Call(recv *Object, name string, args ...*Object) (*Object, error) {
	c := rt.ClassOf(recv)
	m, err := rt.resolve(c, name)
	if err != nil {
		return nil, err
	}
	call := &Call{
		Receiver: recv,
		Name:     name,
		Args:     args,
		Class:    c,
		Context:  m.Owner(),
	}
	return m.fn(rt, call)
}

// resolve finds the first definition of name along c's linearization.
func (rt *Runtime) resolve(c *Class, name string) (*Method, error) {
	lin, err := c.Linearize()
	if err != nil {
		return nil, err
	}
	for _, k := range lin {
		if m, ok := k.Method(name); ok {
			return m, nil
		}
	}
	return nil, Usagef("no method %q on class %s", name, c.Name())
}

// resolveAfter finds the next definition of name along lin strictly after
// the class after. If after does not occur in lin, resolution starts from
// the beginning.
func resolveAfter(lin []*Class, after *Class, name string) (*Method, bool) {
	i := 0
	for j, k := range lin {
		if k == after {
			i = j + 1
			break
		}
	}
	for _, k := range lin[i:] {
		if m, ok := k.Method(name); ok {
			return m, true
		}
	}
	return nil, false
}
