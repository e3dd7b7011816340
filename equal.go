package skink

import "bytes"

// objPair keys the visited set of the equality walk.
type objPair struct {
	a, b uintptr
}

// IsEqual performs a recursive structural comparison of the subject against
// other. Mappings compare by key set and per-key value, insertion order
// irrelevant; sequences compare elementwise in order; code values compare by
// identity. Subjects blessed with numeric or string overloads on both sides
// compare via their hook results, numeric preferred. A revisited pair of
// nodes is presumed equal, so self-referential structures terminate.
func (m *Meta) IsEqual(other *Object) (bool, error) {
	if other == nil {
		return false, Usagef("is_equal: no value to compare against")
	}
	return m.rt.deepEqual(m.subject, other, make(map[objPair]bool))
}

func (rt *Runtime) deepEqual(a, b *Object, seen map[objPair]bool) (bool, error) {
	if a == b {
		return true, nil
	}
	pair := objPair{a.UniqueID(), b.UniqueID()}
	if seen[pair] {
		// Coinductive: a pair under comparison is presumed equal until a
		// difference is found elsewhere.
		return true, nil
	}
	seen[pair] = true
	if a.RefType() == RefScalar && b.RefType() == RefScalar {
		return scalarEqual(a, b), nil
	}
	if eq, ok, err := rt.overloadEqual(a, b, seen); ok || err != nil {
		return eq, err
	}
	ac, _ := a.Blessed()
	bc, _ := b.Blessed()
	if ac != bc {
		return false, nil
	}
	if a.RefType() != b.RefType() {
		return false, nil
	}
	switch a.RefType() {
	case RefSequence:
		ae, be := a.elements(), b.elements()
		if len(ae) != len(be) {
			return false, nil
		}
		for i := range ae {
			eq, err := rt.deepEqual(ae[i], be[i], seen)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case RefMapping:
		ak, bk := a.MapKeys(), b.MapKeys()
		if len(ak) != len(bk) {
			return false, nil
		}
		for i, k := range ak {
			if bk[i] != k {
				return false, nil
			}
			eq, err := rt.deepEqual(a.MapAt(k), b.MapAt(k), seen)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}
	// Distinct code values are never equal.
	return false, nil
}

// overloadEqual compares two values via their overload hooks. The second
// result is false when the pair does not qualify: both sides must be blessed
// and both must carry a numeric or a string hook.
func (rt *Runtime) overloadEqual(a, b *Object, seen map[objPair]bool) (bool, bool, error) {
	if _, ok := a.Blessed(); !ok {
		return false, false, nil
	}
	if _, ok := b.Blessed(); !ok {
		return false, false, nil
	}
	aNum := rt.hasOverload(a, OpNumber)
	bNum := rt.hasOverload(b, OpNumber)
	if aNum && bNum {
		av, _, err := rt.overloadValue(a, OpNumber)
		if err != nil {
			return false, true, err
		}
		bv, _, err := rt.overloadValue(b, OpNumber)
		if err != nil {
			return false, true, err
		}
		return av.Number() == bv.Number(), true, nil
	}
	aStr := rt.hasOverload(a, OpString)
	bStr := rt.hasOverload(b, OpString)
	if aStr && bStr {
		av, _, err := rt.overloadValue(a, OpString)
		if err != nil {
			return false, true, err
		}
		bv, _, err := rt.overloadValue(b, OpString)
		if err != nil {
			return false, true, err
		}
		eq, err := rt.deepEqual(av, bv, seen)
		return eq, true, err
	}
	return false, false, nil
}

// hasOverload reports whether o's effective class carries a hook for op.
func (rt *Runtime) hasOverload(o *Object, op Op) bool {
	_, ok := rt.OverloadFor(rt.ClassOf(o), op)
	return ok
}

// scalarEqual compares two scalars: undef equals only undef; values that
// both read as numbers compare numerically; byte strings compare bytewise;
// everything else compares as text.
func scalarEqual(a, b *Object) bool {
	au, bu := a.Kind() == KindUndef, b.Kind() == KindUndef
	if au || bu {
		return au && bu
	}
	an, aok := numericScalar(a)
	bn, bok := numericScalar(b)
	if aok && bok {
		return an == bn
	}
	if a.Kind() == KindBytes && b.Kind() == KindBytes {
		ab, _ := a.BytesValue()
		bb, _ := b.BytesValue()
		return bytes.Equal(ab, bb)
	}
	return a.Text() == b.Text()
}

// numericScalar reads a scalar as a number: number kind directly, bool as
// 1/0, text and bytes only when they look like a number.
func numericScalar(o *Object) (float64, bool) {
	switch o.Kind() {
	case KindNumber:
		return o.Number(), true
	case KindBool:
		return o.Number(), true
	case KindText, KindBytes:
		return looksLikeNumber(o.Text())
	}
	return 0, false
}
