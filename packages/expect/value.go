package expect

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
)

// undefinedType is the absent-value sentinel. It is distinct from nil: a
// missing property lookup yields Undefined, while nil models an explicit
// null.
type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is returned by Property for paths that do not exist and is the
// only value accepted by ToBeUndefined.
var Undefined undefinedType

func isUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

// isNull reports whether v is the null sentinel: untyped nil or a nil
// pointer-like value. Undefined is not null.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	if isUndefined(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// isFalsy classifies v against the fixed falsy set: false, numeric zero,
// the empty string, nil, Undefined, and NaN. Everything else is truthy.
func isFalsy(v any) bool {
	if v == nil || isUndefined(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// numericValue converts any integer or float value (including named types)
// to float64.
func numericValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// stringValue extracts the string from string-kinded subjects, including
// named string types.
func stringValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// formatValue renders a value for diagnostic messages.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case undefinedType:
		return "undefined"
	case string:
		return strconv.Quote(t)
	case *regexp.Regexp:
		return "/" + t.String() + "/"
	}
	return fmt.Sprintf("%v", v)
}
