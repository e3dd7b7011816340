package skink

import (
	"strings"

	"github.com/zephyrtronium/contains"
)

// MROMode selects the algorithm a class uses to linearize its ancestry.
type MROMode int

const (
	// MRODepthFirst linearizes by preorder depth-first search over the
	// declared parents, keeping the first occurrence of each class.
	MRODepthFirst MROMode = iota
	// MROC3 linearizes by the C3 merge of the parents' linearizations. C3
	// preserves local precedence order and monotonicity, but rejects
	// hierarchies for which no such order exists.
	MROC3
)

// String returns the conventional name of the mode.
func (m MROMode) String() string {
	switch m {
	case MRODepthFirst:
		return "dfs"
	case MROC3:
		return "c3"
	}
	return "invalid"
}

// SetMRO selects the class's linearization algorithm and invalidates cached
// linearizations.
func (c *Class) SetMRO(m MROMode) {
	c.rt.mu.Lock()
	c.mro = m
	c.rt.mu.Unlock()
	c.rt.invalidate()
}

// MRO returns the class's linearization algorithm.
func (c *Class) MRO() MROMode {
	c.rt.mu.RLock()
	m := c.mro
	c.rt.mu.RUnlock()
	return m
}

// Linearize returns the class's full method-resolution order: the class
// itself first, then its ancestors, ending with the universal root. The
// result is never empty, and method dispatch consults classes in exactly
// this order. Results are cached until the hierarchy changes.
func (c *Class) Linearize() ([]*Class, error) {
	gen := c.rt.generation()
	c.rt.mu.RLock()
	if c.linOK && c.linGen == gen {
		lin := append([]*Class(nil), c.lin...)
		c.rt.mu.RUnlock()
		return lin, nil
	}
	c.rt.mu.RUnlock()
	c.rt.mu.Lock()
	defer c.rt.mu.Unlock()
	gen = c.rt.generation()
	if c.linOK && c.linGen == gen {
		return append([]*Class(nil), c.lin...), nil
	}
	var lin []*Class
	var err error
	switch c.mro {
	case MROC3:
		lin, err = c.c3Locked(make(map[uintptr]bool))
	default:
		lin = c.dfsLocked()
	}
	if err != nil {
		return nil, err
	}
	c.lin, c.linGen, c.linOK = lin, gen, true
	return append([]*Class(nil), lin...), nil
}

// dfsLocked computes the depth-first linearization. The root is held out of
// the walk and appended last, so that parent lists which declare the root
// explicitly still place it at the end. A visited set makes the walk
// terminate on cyclic parent graphs. The registry lock must be held.
func (c *Class) dfsLocked() []*Class {
	var out []*Class
	seen := contains.Set{}
	var walk func(k *Class)
	walk = func(k *Class) {
		if k == c.rt.Root {
			return
		}
		if !seen.Add(k.id) {
			return
		}
		out = append(out, k)
		for _, p := range k.parents {
			walk(p)
		}
	}
	walk(c)
	return append(out, c.rt.Root)
}

// c3Locked computes the C3 linearization. visiting tracks the classes on the
// current recursion path to detect inheritance cycles. The registry lock
// must be held.
func (c *Class) c3Locked(visiting map[uintptr]bool) ([]*Class, error) {
	if c == c.rt.Root {
		return []*Class{c.rt.Root}, nil
	}
	if visiting[c.id] {
		return nil, Usagef("inheritance cycle through class %s", c.name)
	}
	visiting[c.id] = true
	defer delete(visiting, c.id)
	seqs := make([][]*Class, 0, len(c.parents)+1)
	for _, p := range c.parents {
		pl, err := p.c3Locked(visiting)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, pl)
	}
	if len(c.parents) > 0 {
		seqs = append(seqs, append([]*Class(nil), c.parents...))
	}
	merged, err := c3Merge(seqs)
	if err != nil {
		return nil, Usagef("class %s: %w", c.name, err)
	}
	lin := append([]*Class{c}, merged...)
	if lin[len(lin)-1] != c.rt.Root {
		lin = append(lin, c.rt.Root)
	}
	return lin, nil
}

// c3Merge merges linearizations by the C3 rule: repeatedly take the first
// head that appears in no other sequence's tail. If no head qualifies, the
// hierarchy has no consistent linearization.
func c3Merge(seqs [][]*Class) ([]*Class, error) {
	var out []*Class
	for {
		live := seqs[:0:0]
		for _, s := range seqs {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		if len(live) == 0 {
			return out, nil
		}
		var next *Class
		for _, s := range live {
			if !inTail(s[0], live) {
				next = s[0]
				break
			}
		}
		if next == nil {
			return nil, Usagef("inconsistent hierarchy: no valid head among %s", headNames(live))
		}
		out = append(out, next)
		seqs = seqs[:0]
		for _, s := range live {
			if s[0] == next {
				s = s[1:]
			}
			seqs = append(seqs, s)
		}
	}
}

// inTail reports whether k appears past the head of any sequence.
func inTail(k *Class, seqs [][]*Class) bool {
	for _, s := range seqs {
		for _, t := range s[1:] {
			if t == k {
				return true
			}
		}
	}
	return false
}

// headNames formats the candidate heads for the inconsistency error.
func headNames(seqs [][]*Class) string {
	names := make([]string, 0, len(seqs))
	for _, s := range seqs {
		names = append(names, s[0].name)
	}
	return strings.Join(names, ", ")
}
