package skink

import (
	"github.com/zephyrtronium/contains"
	"go.uber.org/zap"
)

// TaintedString creates a text scalar that is already marked tainted. It is
// the ingestion helper for data crossing a trust boundary.
func (rt *Runtime) TaintedString(s string) *Object {
	o := rt.NewString(s)
	o.tainted = true
	return o
}

// taintFlag reads the object's own taint flag.
func (o *Object) taintFlag() bool {
	o.Lock()
	t := o.tainted
	o.Unlock()
	return t
}

// setTaint writes the object's own taint flag.
func (o *Object) setTaint(t bool) {
	o.Lock()
	o.tainted = t
	o.Unlock()
}

// IsTainted reports whether the subject carries tainted content. Scalars
// report their own flag. A non-scalar reports false unless its class has a
// string or numeric overload, in which case the hook's result is consulted,
// recursively. Hook failures read as untainted.
func (m *Meta) IsTainted() bool {
	seen := contains.Set{}
	return m.rt.taintedVia(m.subject, &seen)
}

// taintedVia follows overload hooks to the values that actually carry taint
// flags. seen breaks hook cycles.
func (rt *Runtime) taintedVia(o *Object, seen *contains.Set) bool {
	if o.RefType() == RefScalar {
		return o.taintFlag()
	}
	if !seen.Add(o.UniqueID()) {
		return false
	}
	for _, op := range []Op{OpString, OpNumber} {
		v, ok, err := rt.overloadValue(o, op)
		if err != nil || !ok {
			continue
		}
		if rt.taintedVia(v, seen) {
			return true
		}
	}
	return false
}

// Taint marks the subject's content as tainted. Marking an already tainted
// scalar is a no-op. A non-scalar whose string overload already presents
// tainted content is a silent no-op; any other non-scalar is a usage error,
// since it has nowhere to keep the flag.
func (m *Meta) Taint() error {
	o := m.subject
	if o.RefType() == RefScalar {
		o.setTaint(true)
		Logger().Debug("tainted scalar",
			zap.Uintptr("object", o.UniqueID()),
			zap.Stringer("runtime", m.rt.ID()))
		return nil
	}
	if _, ok := m.rt.OverloadFor(m.rt.ClassOf(o), OpString); ok && m.IsTainted() {
		return nil
	}
	return Usagef("cannot taint a %v without a taint-capable overload", o.RefType())
}

// Untaint clears the subject's taint. Clearing an untainted scalar is a
// no-op. A non-scalar that is string-overloaded and currently tainted fails
// with an unsafe-operation error: its taint lives on values the hook creates
// afresh each call, so clearing cannot stick. All other non-scalars are
// silent no-ops.
func (m *Meta) Untaint() error {
	o := m.subject
	if o.RefType() == RefScalar {
		o.setTaint(false)
		Logger().Debug("untainted scalar",
			zap.Uintptr("object", o.UniqueID()),
			zap.Stringer("runtime", m.rt.ID()))
		return nil
	}
	if _, ok := m.rt.OverloadFor(m.rt.ClassOf(o), OpString); ok && m.IsTainted() {
		return Unsafef("cannot untaint a tainted %v with a string overload", o.RefType())
	}
	return nil
}
