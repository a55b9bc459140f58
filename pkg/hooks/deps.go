package hooks

import (
	"math"
	"reflect"
)

// Deps is an ordered dependency list.
//
// A nil Deps means "no dependency list": the value or callback is recreated
// on every call. An empty non-nil Deps is always equal to itself.
type Deps []any

// Same reports whether a and b are shallowly equal.
//
// Identified values compare by token. Pointers, channels, slices and maps
// compare by reference (slices also by length). NaN equals NaN. Other
// comparable values compare with ==. Funcs and non-comparable structs are never equal, so a
// raw closure prop always counts as changed; wrap it with UseCallback to give
// it a stable identity.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ia, ok := a.(Identified); ok {
		ib, ok := b.(Identified)
		return ok && IdentityEquals(ia.Identity(), ib.Identity())
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := va.Complex(), vb.Complex()
		return sameFloat(real(ca), real(cb)) && sameFloat(imag(ca), imag(cb))
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// Equal reports whether d and other have the same length and pairwise Same
// elements. Two nil lists are not equal: nil means "always changed".
func (d Deps) Equal(other Deps) bool {
	if d == nil || other == nil {
		return false
	}
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if !Same(d[i], other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of d that preserves nil-ness.
func (d Deps) Clone() Deps {
	if d == nil {
		return nil
	}
	out := make(Deps, len(d))
	copy(out, d)
	return out
}

// arityChanged reports whether prev and next are both lists of differing length.
func arityChanged(prev, next Deps) bool {
	return prev != nil && next != nil && len(prev) != len(next)
}
