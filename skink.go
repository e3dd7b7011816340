package skink

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RootClassName is the name of the universal root class. Every linearization
// ends with it.
const RootClassName = "Object"

// A Runtime owns a class registry and constructs all values. Runtimes are
// independent of each other; classes and objects must not be shared between
// them.
type Runtime struct {
	// Root is the universal root class.
	Root *Class

	// id identifies this runtime instance in log fields.
	id uuid.UUID

	// mu guards the class registry.
	mu sync.RWMutex
	// classes is the registry of named classes, including the core classes.
	classes map[string]*Class
	// core maps each shape to its core class, the effective class of
	// unblessed values of that shape.
	core [4]*Class

	// gen is the hierarchy generation. Edits to any class's parent list
	// increment it, invalidating cached linearizations registry-wide. All
	// accesses must be atomic.
	gen uint64
}

// NewRuntime creates a runtime and boots its core class graph: the root
// class and one core class per shape, each with the root as its only parent.
func NewRuntime() *Runtime {
	rt := &Runtime{
		id:      uuid.New(),
		classes: make(map[string]*Class),
	}
	rt.Root = rt.initObject()
	rt.core[RefScalar] = rt.initScalar()
	rt.core[RefSequence] = rt.initSequence()
	rt.core[RefMapping] = rt.initMapping()
	rt.core[RefCode] = rt.initCode()
	Logger().Debug("runtime booted", zap.Stringer("runtime", rt.id))
	return rt
}

// ID returns the identity of this runtime instance.
func (rt *Runtime) ID() uuid.UUID {
	return rt.id
}

// CoreClass returns the core class for a shape: the class that unblessed
// values of that shape belong to.
func (rt *Runtime) CoreClass(r RefType) *Class {
	return rt.core[r]
}

// bootClass registers a core class during runtime construction. Core classes
// other than the root get the root as their only parent.
func (rt *Runtime) bootClass(name string) *Class {
	c := &Class{
		rt:        rt,
		id:        nextID(),
		name:      name,
		methods:   make(map[string]*Method),
		overloads: make(map[Op]*Method),
	}
	if rt.Root != nil {
		c.parents = []*Class{rt.Root}
	}
	rt.classes[name] = c
	return c
}

// DefineClass registers a new class with the given direct parents, in order.
// A class with no declared parents still linearizes to the root. The name
// must be nonempty and not already registered.
func (rt *Runtime) DefineClass(name string, parents ...*Class) (*Class, error) {
	if name == "" {
		return nil, Usagef("class name must be nonempty")
	}
	for _, p := range parents {
		if p == nil {
			return nil, Usagef("class %s: nil parent", name)
		}
		if p.rt != rt {
			return nil, Usagef("class %s: parent %s belongs to a different runtime", name, p.Name())
		}
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if _, ok := rt.classes[name]; ok {
		return nil, Usagef("class %s already defined", name)
	}
	c := &Class{
		rt:        rt,
		id:        nextID(),
		name:      name,
		parents:   append([]*Class(nil), parents...),
		methods:   make(map[string]*Method),
		overloads: make(map[Op]*Method),
	}
	rt.classes[name] = c
	atomic.AddUint64(&rt.gen, 1)
	Logger().Debug("defined class",
		zap.String("class", name),
		zap.Int("parents", len(parents)),
		zap.Stringer("runtime", rt.id))
	return c, nil
}

// LookupClass finds a registered class by name.
func (rt *Runtime) LookupClass(name string) (*Class, bool) {
	rt.mu.RLock()
	c, ok := rt.classes[name]
	rt.mu.RUnlock()
	return c, ok
}

// generation returns the current hierarchy generation.
func (rt *Runtime) generation() uint64 {
	return atomic.LoadUint64(&rt.gen)
}

// invalidate bumps the hierarchy generation after a parent-list edit.
func (rt *Runtime) invalidate() {
	atomic.AddUint64(&rt.gen, 1)
}
