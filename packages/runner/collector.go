package runner

import (
	"time"

	"github.com/Venkat-18/jest/packages/expect"
)

// State is the lifecycle phase of a Collector.
type State int

const (
	// Idle means no test block has started yet.
	Idle State = iota
	// InTest means a test block is executing and results are being appended.
	InTest
	// TestDone means the block has completed and the record is final.
	TestDone
)

// Error kinds recorded on a TestRecord.
const (
	ErrKindUsage = "usage"
	ErrKindPanic = "panic"
)

// TestRecord accumulates every matcher result evaluated inside one test
// block, plus the block's terminal error if it raised.
type TestRecord struct {
	Name       string
	Results    []*expect.Result
	Skipped    bool
	SkipReason string
	Error      string
	ErrorKind  string
	Duration   time.Duration
}

// Passed reports whether the block completed without a raised error and
// without any failed matcher.
func (r *TestRecord) Passed() bool {
	if r.Skipped || r.Error != "" {
		return false
	}
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// FailedResults returns the failed matcher results in evaluation order.
func (r *TestRecord) FailedResults() []*expect.Result {
	var failed []*expect.Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Collector tracks the record of the currently executing test block. Each
// block gets its own Collector, so parallel blocks never share state.
type Collector struct {
	state  State
	record *TestRecord
}

// NewCollector returns a Collector in the Idle state.
func NewCollector() *Collector {
	return &Collector{}
}

// State returns the current lifecycle phase.
func (c *Collector) State() State { return c.state }

// Begin transitions Idle -> InTest, creating the record for the named test.
func (c *Collector) Begin(name string) *TestRecord {
	if c.state != Idle {
		panic(&expect.UsageError{Matcher: name, Reason: "collector already used; each test block needs a fresh collector"})
	}
	c.state = InTest
	c.record = &TestRecord{Name: name}
	return c.record
}

// Report appends a matcher result to the current record. Reporting outside
// a running block is a usage error.
func (c *Collector) Report(res *expect.Result) {
	if c.state != InTest {
		panic(&expect.UsageError{Matcher: res.Matcher, Reason: "expectation evaluated outside a running test block"})
	}
	c.record.Results = append(c.record.Results, res)
}

// End transitions InTest -> TestDone and attaches the block's raised error,
// if any. The finalized record is returned.
func (c *Collector) End(err error) *TestRecord {
	if c.state != InTest {
		return c.record
	}
	c.state = TestDone
	if err != nil {
		if ue, ok := err.(*expect.UsageError); ok {
			c.record.Error = ue.Error()
			c.record.ErrorKind = ErrKindUsage
		} else {
			c.record.Error = err.Error()
			c.record.ErrorKind = ErrKindPanic
		}
	}
	return c.record
}
