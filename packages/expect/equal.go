package expect

import (
	"math"
	"reflect"
)

// visit tracks a pair of pointerish values already being compared, so that
// cyclic structures terminate.
type visit struct {
	a, b uintptr
	typ  reflect.Type
}

// deepEqual implements structural equality: same shape, all fields and
// elements deeply equal. Numbers compare by value across kinds, NaN equals
// NaN, and map entries explicitly set to Undefined compare equal to the
// entry being absent.
func deepEqual(a, b any) bool {
	return deepValueEqual(reflect.ValueOf(a), reflect.ValueOf(b), make(map[visit]bool))
}

func deepValueEqual(v1, v2 reflect.Value, visited map[visit]bool) bool {
	if !v1.IsValid() || !v2.IsValid() {
		return v1.IsValid() == v2.IsValid()
	}

	if v1.Kind() == reflect.Interface {
		if v1.IsNil() {
			return v2.Kind() == reflect.Interface && v2.IsNil() || !v2.IsValid()
		}
		v1 = v1.Elem()
	}
	if v2.Kind() == reflect.Interface {
		if v2.IsNil() {
			return false // v1 is non-nil by now
		}
		v2 = v2.Elem()
	}

	if isUndefinedValue(v1) || isUndefinedValue(v2) {
		return isUndefinedValue(v1) && isUndefinedValue(v2)
	}

	if n1, ok1 := numericKind(v1); ok1 {
		n2, ok2 := numericKind(v2)
		if !ok2 {
			return false
		}
		if math.IsNaN(n1) && math.IsNaN(n2) {
			return true
		}
		return n1 == n2
	}

	if v1.Kind() != v2.Kind() {
		return false
	}

	// Remember in-flight pointerish pairs before descending.
	switch v1.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if v1.Kind() != reflect.Slice && v1.Pointer() == v2.Pointer() {
			return true
		}
		k := visit{v1.Pointer(), v2.Pointer(), v1.Type()}
		if visited[k] {
			return true
		}
		visited[k] = true
	}

	switch v1.Kind() {
	case reflect.Bool:
		return v1.Bool() == v2.Bool()
	case reflect.String:
		return v1.String() == v2.String()
	case reflect.Complex64, reflect.Complex128:
		return v1.Complex() == v2.Complex()
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v1.IsNil() || v2.IsNil() {
			return v1.IsNil() == v2.IsNil()
		}
		return v1.Pointer() == v2.Pointer()
	case reflect.Ptr:
		if v1.IsNil() || v2.IsNil() {
			return v1.IsNil() == v2.IsNil()
		}
		return deepValueEqual(v1.Elem(), v2.Elem(), visited)
	case reflect.Array:
		if v1.Len() != v2.Len() {
			return false
		}
		for i := 0; i < v1.Len(); i++ {
			if !deepValueEqual(v1.Index(i), v2.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if v1.IsNil() != v2.IsNil() {
			return false
		}
		if v1.Len() != v2.Len() {
			return false
		}
		for i := 0; i < v1.Len(); i++ {
			if !deepValueEqual(v1.Index(i), v2.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Map:
		if v1.IsNil() != v2.IsNil() {
			return false
		}
		return mapsDeepEqual(v1, v2, visited)
	case reflect.Struct:
		if v1.Type() != v2.Type() {
			return false
		}
		for i := 0; i < v1.NumField(); i++ {
			if !deepValueEqual(v1.Field(i), v2.Field(i), visited) {
				return false
			}
		}
		return true
	}

	if v1.Type() != v2.Type() {
		return false
	}
	if v1.CanInterface() && v2.CanInterface() && v1.Type().Comparable() {
		return v1.Interface() == v2.Interface()
	}
	return false
}

// mapsDeepEqual compares maps treating entries whose value is Undefined as
// if the key were not present at all.
func mapsDeepEqual(v1, v2 reflect.Value, visited map[visit]bool) bool {
	if v1.Type().Key() != v2.Type().Key() {
		return false
	}

	present := func(m, key reflect.Value) (reflect.Value, bool) {
		val := m.MapIndex(key)
		if !val.IsValid() {
			return val, false
		}
		if isUndefinedValue(val) {
			return val, false
		}
		return val, true
	}

	for _, k := range v1.MapKeys() {
		val1, ok1 := present(v1, k)
		val2, ok2 := present(v2, k)
		if ok1 != ok2 {
			return false
		}
		if ok1 && !deepValueEqual(val1, val2, visited) {
			return false
		}
	}
	// Keys only in v2 still count unless their value is Undefined.
	for _, k := range v2.MapKeys() {
		if _, ok := present(v2, k); !ok {
			continue
		}
		if !v1.MapIndex(k).IsValid() {
			return false
		}
	}
	return true
}

func isUndefinedValue(v reflect.Value) bool {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v.IsValid() && v.Type() == reflect.TypeOf(Undefined)
}

func numericKind(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
