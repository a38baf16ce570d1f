package expect

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// thrown is the outcome of a guarded invocation: whether the callable
// raised (panicked or returned a non-nil error), and what it raised.
type thrown struct {
	raised  bool
	err     error
	message string
}

// invokeGuarded calls fn and captures a panic or a returned error without
// letting either escape. UsageError panics are not swallowed; they belong
// to the enclosing test block.
func invokeGuarded(call func() error) (out thrown) {
	defer func() {
		if r := recover(); r != nil {
			if _, usage := r.(*UsageError); usage {
				panic(r)
			}
			out.raised = true
			if err, ok := r.(error); ok {
				out.err = err
				out.message = err.Error()
			} else {
				out.message = fmt.Sprint(r)
			}
		}
	}()
	if err := call(); err != nil {
		out.raised = true
		out.err = err
		out.message = err.Error()
	}
	return out
}

// ToThrow invokes the subject, which must be a func() or func() error, and
// passes iff it panics or returns a non-nil error. An optional single
// argument narrows the match:
//
//   - string: the raised message must equal it exactly
//   - *regexp.Regexp: the raised message must match it
//   - error: the raised error must satisfy errors.Is or share its dynamic type
func (e *Expectation) ToThrow(want ...any) *Result {
	const matcher = "toThrow"

	var call func() error
	switch fn := e.subject.(type) {
	case func():
		call = func() error { fn(); return nil }
	case func() error:
		call = fn
	default:
		panicUsage(matcher, "subject %s is not callable (want func() or func() error)", formatValue(e.subject))
	}
	if len(want) > 1 {
		panicUsage(matcher, "at most one expected error may be given, got %d", len(want))
	}

	out := invokeGuarded(call)

	if len(want) == 0 {
		return e.verify(matcher, out.raised, nil, "to throw")
	}

	switch w := want[0].(type) {
	case string:
		pass := out.raised && out.message == w
		return e.verify(matcher, pass, w,
			fmt.Sprintf("to throw with message %s%s", formatValue(w), thrownDetail(out)))
	case *regexp.Regexp:
		if w == nil {
			panicUsage(matcher, "pattern is nil")
		}
		pass := out.raised && w.MatchString(out.message)
		return e.verify(matcher, pass, w,
			fmt.Sprintf("to throw with message matching %s%s", formatValue(w), thrownDetail(out)))
	case error:
		pass := out.raised && out.err != nil &&
			(errors.Is(out.err, w) || reflect.TypeOf(out.err) == reflect.TypeOf(w))
		return e.verify(matcher, pass, w,
			fmt.Sprintf("to throw %v%s", w, thrownDetail(out)))
	default:
		panicUsage(matcher, "expected error must be a string, *regexp.Regexp or error, got %T", want[0])
	}
	return nil
}

func thrownDetail(out thrown) string {
	if !out.raised {
		return " (it did not throw)"
	}
	return fmt.Sprintf(" (it threw %q)", out.message)
}
