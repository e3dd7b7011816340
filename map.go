package skink

import "sort"

// mapValue is the shape value of mappings. Keys are text; insertion order is
// not recorded, so every deterministic surface sorts keys bytewise.
type mapValue struct {
	m map[string]*Object
}

func (*mapValue) reftype() RefType {
	return RefMapping
}

// NewMap creates a mapping holding the given entries.
func (rt *Runtime) NewMap(pairs map[string]*Object) *Object {
	m := make(map[string]*Object, len(pairs))
	for k, v := range pairs {
		m[k] = v
	}
	return rt.newObject(&mapValue{m: m})
}

// MapAt returns the value stored under key, or nil if o is not a mapping or
// the key is absent.
func (o *Object) MapAt(key string) *Object {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*mapValue)
	if !ok {
		return nil
	}
	return v.m[key]
}

// MapPut stores a value under key, replacing any previous value.
func (o *Object) MapPut(key string, e *Object) error {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*mapValue)
	if !ok {
		return Usagef("not a mapping: %v", o.value.reftype())
	}
	v.m[key] = e
	return nil
}

// MapDelete removes the entry under key, reporting whether it was present.
func (o *Object) MapDelete(key string) (bool, error) {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*mapValue)
	if !ok {
		return false, Usagef("not a mapping: %v", o.value.reftype())
	}
	_, had := v.m[key]
	delete(v.m, key)
	return had, nil
}

// MapExists reports whether the mapping has an entry under key.
func (o *Object) MapExists(key string) bool {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*mapValue)
	if !ok {
		return false
	}
	_, had := v.m[key]
	return had
}

// MapKeys returns the mapping's keys in bytewise sorted order.
func (o *Object) MapKeys() []string {
	o.Lock()
	defer o.Unlock()
	v, ok := o.value.(*mapValue)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// initMapping builds the core class of unblessed mappings.
func (rt *Runtime) initMapping() *Class {
	c := rt.bootClass("Mapping")
	c.Define("at", MappingAt)
	c.Define("delete", MappingDelete)
	c.Define("exists", MappingExists)
	c.Define("keys", MappingKeys)
	c.Define("put", MappingPut)
	c.Define("size", MappingSize)
	c.Define("values", MappingValues)
	return c
}

// MappingSize is a runtime method. It returns the number of entries.
//
// size
func MappingSize(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefMapping {
		return nil, Usagef("size: receiver must be a mapping")
	}
	return rt.NewNumber(float64(call.Receiver.Len())), nil
}

// MappingKeys is a runtime method. It returns the keys in sorted order as a
// sequence of text scalars.
//
// keys
func MappingKeys(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefMapping {
		return nil, Usagef("keys: receiver must be a mapping")
	}
	keys := call.Receiver.MapKeys()
	elems := make([]*Object, len(keys))
	for i, k := range keys {
		elems[i] = rt.NewString(k)
	}
	return rt.NewList(elems...), nil
}

// MappingValues is a runtime method. It returns the values in the sorted
// order of their keys.
//
// values
func MappingValues(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefMapping {
		return nil, Usagef("values: receiver must be a mapping")
	}
	keys := call.Receiver.MapKeys()
	elems := make([]*Object, len(keys))
	for i, k := range keys {
		elems[i] = call.Receiver.MapAt(k)
	}
	return rt.NewList(elems...), nil
}

// MappingAt is a runtime method. It returns the value under the given key,
// or undef when the key is absent.
//
// at(key)
func MappingAt(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefMapping {
		return nil, Usagef("at: receiver must be a mapping")
	}
	k, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	v := call.Receiver.MapAt(k)
	if v == nil {
		return rt.NewUndef(), nil
	}
	return v, nil
}

// MappingPut is a runtime method. It stores a value under a key and returns
// the value.
//
// put(key, value)
func MappingPut(rt *Runtime, call *Call) (*Object, error) {
	k, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	v := call.ArgAt(1)
	if v == nil {
		return nil, Usagef("put: missing argument 1")
	}
	if err := call.Receiver.MapPut(k, v); err != nil {
		return nil, err
	}
	return v, nil
}

// MappingExists is a runtime method. It reports whether a key is present.
//
// exists(key)
func MappingExists(rt *Runtime, call *Call) (*Object, error) {
	if call.Receiver.RefType() != RefMapping {
		return nil, Usagef("exists: receiver must be a mapping")
	}
	k, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	return rt.NewBool(call.Receiver.MapExists(k)), nil
}

// MappingDelete is a runtime method. It removes an entry, reporting whether
// it was present.
//
// delete(key)
func MappingDelete(rt *Runtime, call *Call) (*Object, error) {
	k, err := call.TextArg(0)
	if err != nil {
		return nil, err
	}
	had, err := call.Receiver.MapDelete(k)
	if err != nil {
		return nil, err
	}
	return rt.NewBool(had), nil
}
