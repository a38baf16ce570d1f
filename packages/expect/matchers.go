package expect

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
)

// ToBe performs an identity comparison: value equality for primitives,
// reference identity for slices, maps, channels and functions. Two
// structurally equal but distinct composites do not satisfy ToBe.
func (e *Expectation) ToBe(expected any) *Result {
	return e.verify("toBe", isSame(e.subject, expected), expected,
		fmt.Sprintf("to be %s", formatValue(expected)))
}

// ToEqual performs recursive structural equality. See deepEqual for the
// exact semantics, including the Undefined-entry policy for maps.
func (e *Expectation) ToEqual(expected any) *Result {
	return e.verify("toEqual", deepEqual(e.subject, expected), expected,
		fmt.Sprintf("to equal %s", formatValue(expected)))
}

// ToBeNull passes iff the subject is nil, either untyped or a nil
// pointer-like value. The Undefined sentinel is not null.
func (e *Expectation) ToBeNull() *Result {
	return e.verify("toBeNull", isNull(e.subject), nil, "to be null")
}

// ToBeUndefined passes iff the subject is exactly the Undefined sentinel.
func (e *Expectation) ToBeUndefined() *Result {
	return e.verify("toBeUndefined", isUndefined(e.subject), Undefined, "to be undefined")
}

// ToBeDefined is the exact negation of ToBeUndefined.
func (e *Expectation) ToBeDefined() *Result {
	return e.verify("toBeDefined", !isUndefined(e.subject), nil, "to be defined")
}

// ToBeTruthy passes iff the subject falls outside the fixed falsy set
// (false, numeric zero, empty string, nil, Undefined, NaN).
func (e *Expectation) ToBeTruthy() *Result {
	return e.verify("toBeTruthy", !isFalsy(e.subject), true, "to be truthy")
}

// ToBeFalsy is the exact negation of ToBeTruthy over the same falsy set.
func (e *Expectation) ToBeFalsy() *Result {
	return e.verify("toBeFalsy", isFalsy(e.subject), false, "to be falsy")
}

func (e *Expectation) compareNumeric(matcher string, expected any, cmp func(a, b float64) bool, op string) *Result {
	a, ok := numericValue(e.subject)
	if !ok {
		panicUsage(matcher, "subject %s is not numeric", formatValue(e.subject))
	}
	b, ok := numericValue(expected)
	if !ok {
		panicUsage(matcher, "expected value %s is not numeric", formatValue(expected))
	}
	return e.verify(matcher, cmp(a, b), expected,
		fmt.Sprintf("to be %s %s", op, formatValue(expected)))
}

// ToBeGreaterThan compares numerically. Non-numeric operands raise a
// UsageError rather than failing silently.
func (e *Expectation) ToBeGreaterThan(expected any) *Result {
	return e.compareNumeric("toBeGreaterThan", expected,
		func(a, b float64) bool { return a > b }, "greater than")
}

// ToBeGreaterThanOrEqual compares numerically.
func (e *Expectation) ToBeGreaterThanOrEqual(expected any) *Result {
	return e.compareNumeric("toBeGreaterThanOrEqual", expected,
		func(a, b float64) bool { return a >= b }, "greater than or equal to")
}

// ToBeLessThan compares numerically.
func (e *Expectation) ToBeLessThan(expected any) *Result {
	return e.compareNumeric("toBeLessThan", expected,
		func(a, b float64) bool { return a < b }, "less than")
}

// ToBeLessThanOrEqual compares numerically.
func (e *Expectation) ToBeLessThanOrEqual(expected any) *Result {
	return e.compareNumeric("toBeLessThanOrEqual", expected,
		func(a, b float64) bool { return a <= b }, "less than or equal to")
}

// DefaultPrecision is the number of decimal digits ToBeCloseTo checks when
// no precision argument is given.
const DefaultPrecision = 2

// ToBeCloseTo guards against binary floating-point rounding error: it
// passes iff |subject−expected| < 0.5×10^−precision.
func (e *Expectation) ToBeCloseTo(expected any, precision ...int) *Result {
	const matcher = "toBeCloseTo"
	a, ok := numericValue(e.subject)
	if !ok {
		panicUsage(matcher, "subject %s is not numeric", formatValue(e.subject))
	}
	b, ok := numericValue(expected)
	if !ok {
		panicUsage(matcher, "expected value %s is not numeric", formatValue(expected))
	}
	p := DefaultPrecision
	if len(precision) > 0 {
		p = precision[0]
	}

	pass := false
	switch {
	case math.IsInf(a, 1) && math.IsInf(b, 1), math.IsInf(a, -1) && math.IsInf(b, -1):
		pass = true
	default:
		pass = math.Abs(a-b) < math.Pow(10, -float64(p))/2
	}
	return e.verify(matcher, pass, expected,
		fmt.Sprintf("to be close to %v (%d decimal digits)", expected, p))
}

// ToMatch checks a string subject against a pattern: a *regexp.Regexp
// matches as a regular expression, a plain string matches as a literal
// substring.
func (e *Expectation) ToMatch(pattern any) *Result {
	const matcher = "toMatch"
	s, ok := stringValue(e.subject)
	if !ok {
		panicUsage(matcher, "subject %s is not a string", formatValue(e.subject))
	}

	switch p := pattern.(type) {
	case *regexp.Regexp:
		if p == nil {
			panicUsage(matcher, "pattern is nil")
		}
		return e.verify(matcher, p.MatchString(s), pattern,
			fmt.Sprintf("to match %s", formatValue(p)))
	case string:
		return e.verify(matcher, strings.Contains(s, p), pattern,
			fmt.Sprintf("to match substring %s", formatValue(p)))
	default:
		panicUsage(matcher, "pattern must be a string or *regexp.Regexp, got %T", pattern)
	}
	return nil
}

func containsElement(matcher string, subject, expected any) bool {
	if s, ok := stringValue(subject); ok {
		sub, ok := stringValue(expected)
		if !ok {
			panicUsage(matcher, "expected value %s is not a string", formatValue(expected))
		}
		return strings.Contains(s, sub)
	}

	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if deepEqual(rv.Index(i).Interface(), expected) {
				return true
			}
		}
		return false
	}
	panicUsage(matcher, "subject %s is not iterable", formatValue(subject))
	return false
}

// ToContain passes iff a string subject contains the expected substring, or
// a slice/array subject contains an element deeply equal to expected.
func (e *Expectation) ToContain(expected any) *Result {
	return e.verify("toContain", containsElement("toContain", e.subject, expected), expected,
		fmt.Sprintf("to contain %s", formatValue(expected)))
}

// ToContainEqual is the explicit deep-equality containment variant for
// slice and array subjects.
func (e *Expectation) ToContainEqual(expected any) *Result {
	const matcher = "toContainEqual"
	rv := reflect.ValueOf(e.subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		panicUsage(matcher, "subject %s is not a slice or array", formatValue(e.subject))
	}
	found := false
	for i := 0; i < rv.Len(); i++ {
		if deepEqual(rv.Index(i).Interface(), expected) {
			found = true
			break
		}
	}
	return e.verify(matcher, found, expected,
		fmt.Sprintf("to contain an element equal to %s", formatValue(expected)))
}

// ToHaveLength checks len() of a string, slice, array or map subject.
func (e *Expectation) ToHaveLength(expected int) *Result {
	const matcher = "toHaveLength"
	rv := reflect.ValueOf(e.subject)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
	default:
		panicUsage(matcher, "subject %s has no length", formatValue(e.subject))
	}
	return e.verify(matcher, rv.Len() == expected, expected,
		fmt.Sprintf("to have length %d, got %d", expected, rv.Len()))
}

// isSame is the ToBe comparison: numeric value equality for numbers,
// reference identity for slices, maps, channels and functions, == for
// everything comparable.
func isSame(subject, expected any) bool {
	if subject == nil || expected == nil {
		return subject == nil && expected == nil
	}
	if a, ok := numericValue(subject); ok {
		b, ok2 := numericValue(expected)
		if !ok2 {
			return false
		}
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return a == b
	}

	va := reflect.ValueOf(subject)
	vb := reflect.ValueOf(expected)
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		if vb.Kind() != va.Kind() || va.Type() != vb.Type() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	}
	if va.Type() != vb.Type() || !va.Type().Comparable() {
		return false
	}
	return subject == expected
}
