package output

import (
	"time"

	"github.com/Venkat-18/jest/packages/runner"
)

// Formatter renders suite run results.
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable is implemented by formatters that accumulate results and emit
// a single document at the end of the run.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}
