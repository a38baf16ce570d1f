package expect

import "fmt"

// Result is the outcome of a single matcher evaluation.
type Result struct {
	Matcher  string
	Passed   bool
	Negated  bool
	Expected any
	Actual   any
	// Message is a human-readable diagnostic, built only when the
	// evaluation failed.
	Message string
}

// Reporter receives every matcher result produced by an Expectation.
// The test runner's per-test context implements it.
type Reporter interface {
	Report(*Result)
}

// SnapshotComparer is an optional Reporter capability. Reporters that can
// resolve stored snapshots for the current test implement it; ToMatchSnapshot
// requires it.
type SnapshotComparer interface {
	CompareSnapshot(label string, actual any) (passed bool, message string)
}

// UsageError describes a malformed matcher invocation, such as an ordering
// comparison on a non-numeric subject. It aborts the remaining evaluations
// of the current test block rather than recording an ordinary failure.
type UsageError struct {
	Matcher string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Matcher, e.Reason)
}

// panicUsage raises a UsageError out of an evaluator. The runner recovers it
// at the test-block boundary.
func panicUsage(matcher, format string, args ...any) {
	panic(&UsageError{Matcher: matcher, Reason: fmt.Sprintf(format, args...)})
}
