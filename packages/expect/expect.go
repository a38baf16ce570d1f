package expect

import "fmt"

// Expectation binds a subject value and a negation flag to the matcher
// methods. It is immutable: Not returns a copy with the flag flipped.
type Expectation struct {
	subject  any
	negated  bool
	reporter Reporter
}

// New wraps subject in an Expectation that reports through r. A nil
// Reporter is allowed for standalone evaluation; results are then only
// returned, not recorded.
func New(r Reporter, subject any) *Expectation {
	return &Expectation{subject: subject, reporter: r}
}

// Not returns a new Expectation over the same subject with the pass/fail
// meaning of every subsequent matcher inverted.
func (e *Expectation) Not() *Expectation {
	return &Expectation{subject: e.subject, negated: !e.negated, reporter: e.reporter}
}

// Subject returns the wrapped value.
func (e *Expectation) Subject() any { return e.subject }

// verify folds the raw evaluator outcome with the negation flag, builds the
// diagnostic message on failure only, and reports the result.
func (e *Expectation) verify(matcher string, ok bool, expected any, phrase string) *Result {
	res := &Result{
		Matcher:  matcher,
		Negated:  e.negated,
		Expected: expected,
		Actual:   e.subject,
		Passed:   ok != e.negated,
	}
	if !res.Passed {
		if e.negated {
			res.Message = fmt.Sprintf("expected %s not %s", formatValue(e.subject), phrase)
		} else {
			res.Message = fmt.Sprintf("expected %s %s", formatValue(e.subject), phrase)
		}
	}
	if e.reporter != nil {
		e.reporter.Report(res)
	}
	return res
}
