package reactive

import (
	"math"
	"reflect"
)

// SameValue reports whether a write of b over a is a no-op.
//
// Numbers compare by value with NaN equal to NaN. Maps, slices, pointers and
// channels compare by identity. Functions never compare equal, so replacing
// a handler always counts as a change.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case reflect.Func:
		return false
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// ToRaw unwraps a wrapper to the value it wraps. Other values are returned
// unchanged.
func ToRaw(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.raw
	case *Array:
		return x.raw
	}
	return v
}
