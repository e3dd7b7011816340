package skink

import (
	"fmt"
	"sort"
)

// SymKind classifies one entry of a class's namespace.
type SymKind int

const (
	// SymMethod is a method table entry.
	SymMethod SymKind = iota
	// SymOverload is an operator hook entry.
	SymOverload
	// SymData is a class datum, such as the VERSION entry.
	SymData
)

// String returns the conventional name of the kind.
func (k SymKind) String() string {
	switch k {
	case SymMethod:
		return "method"
	case SymOverload:
		return "overload"
	case SymData:
		return "data"
	}
	return "invalid"
}

// A Symbol is one named binding in a class's namespace.
type Symbol struct {
	// Name is the binding's name.
	Name string
	// Kind classifies the binding.
	Kind SymKind
}

// A SymbolTable is a read-only snapshot of one class's namespace, exposed
// for diagnostic use. Edits to the class after the snapshot was taken do not
// appear in it.
type SymbolTable struct {
	name string
	syms []Symbol
}

// symbolTable snapshots the class's namespace: its direct methods, its
// direct overload hooks, and the VERSION datum when a version is set.
func (c *Class) symbolTable() *SymbolTable {
	c.rt.mu.RLock()
	syms := make([]Symbol, 0, len(c.methods)+len(c.overloads)+1)
	for name := range c.methods {
		syms = append(syms, Symbol{Name: name, Kind: SymMethod})
	}
	for op := range c.overloads {
		syms = append(syms, Symbol{Name: op.String(), Kind: SymOverload})
	}
	if c.version != "" {
		syms = append(syms, Symbol{Name: "VERSION", Kind: SymData})
	}
	c.rt.mu.RUnlock()
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Name != syms[j].Name {
			return syms[i].Name < syms[j].Name
		}
		return syms[i].Kind < syms[j].Kind
	})
	return &SymbolTable{name: c.name, syms: syms}
}

// Name returns the name of the class the snapshot was taken from.
func (t *SymbolTable) Name() string {
	return t.name
}

// Len returns the number of symbols in the snapshot.
func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// Lookup finds a symbol by name. When a name is bound as both a method and
// an overload, the method entry wins.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	for _, s := range t.syms {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// Symbols returns the snapshot's symbols sorted by name.
func (t *SymbolTable) Symbols() []Symbol {
	return append([]Symbol(nil), t.syms...)
}

// String summarizes the snapshot.
func (t *SymbolTable) String() string {
	return fmt.Sprintf("%%%s::(%d symbols)", t.name, len(t.syms))
}
