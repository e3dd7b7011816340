/*
Package skink implements a small dynamic object runtime with a uniform
meta-object protocol.

Every value in skink is an Object: a boxed scalar, sequence, mapping, or code
value, optionally bound ("blessed") to a named class. Classes live in a
Runtime's registry and carry ordered parent lists, method tables, and operator
overload hooks. Method dispatch walks a class's linearized ancestry, which
always begins with the class itself and ends with the universal root class.

The defining constraint of the design is that reflective capability never
occupies a name in a value's own method namespace. Everything universal -
identity, class lookup, ancestry, method enumeration, symbol tables, parent
dispatch, taint tracking, deep equality, checksums, serialization - is reached
through a side channel instead:

	m := rt.Meta(obj)       // obj viewed as a data value
	m := rt.MetaClass(obj)  // obj read as a class name

Both accessors return an ephemeral Meta handle bound to the subject for the
duration of the call; the handle caches nothing and adds nothing to the
subject. Value-directed operations (ID, taint, RefType, Checksum, IsEqual,
Dump) behave identically under either view. Class-directed operations (Class,
ISA, LinearISA, Methods, SymbolTable, Super) resolve their class according to
the view: the instance view uses the subject's own class, while the class view
reads the subject itself as a class name.

A Runtime is the factory for all values and the owner of the class registry.
Use NewRuntime to boot the core class graph, then DefineClass and Bless to
build and apply user classes:

	rt := skink.NewRuntime()
	animal, _ := rt.DefineClass("Animal")
	animal.Define("speak", AnimalSpeak)
	pet := rt.NewString("Rex")
	rt.Bless(pet, animal)
	out, err := rt.Call(pet, "speak")

Taint is a per-object flag marking data from an untrusted source. Scalars
carry the flag directly; blessed containers participate through their string
or numeric overload hooks, whose results are consulted recursively.
*/
package skink
