package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/Venkat-18/jest/packages/expect"
	"github.com/Venkat-18/jest/packages/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	RunID    string      `json:"runId,omitempty"`
	Suite    string      `json:"suite,omitempty"`
	Summary  JSONSummary `json:"summary"`
	Tests    []JSONTest  `json:"tests"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
	Stats    *JSONStats  `json:"stats,omitempty"`
}

// JSONSummary represents the test summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONTest represents a single test result
type JSONTest struct {
	Name       string          `json:"name"`
	Passed     bool            `json:"passed"`
	Skipped    bool            `json:"skipped,omitempty"`
	SkipReason string          `json:"skipReason,omitempty"`
	Duration   float64         `json:"duration"`
	Error      string          `json:"error,omitempty"`
	ErrorKind  string          `json:"errorKind,omitempty"`
	Assertions []JSONAssertion `json:"assertions,omitempty"`
}

// JSONAssertion represents a single matcher result
type JSONAssertion struct {
	Matcher  string `json:"matcher"`
	Negated  bool   `json:"negated,omitempty"`
	Expected any    `json:"expected"`
	Actual   any    `json:"actual"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message,omitempty"`
}

// JSONStats represents duration percentiles in milliseconds
type JSONStats struct {
	MinMs  float64 `json:"minMs"`
	MaxMs  float64 `json:"maxMs"`
	MeanMs float64 `json:"meanMs"`
	P50Ms  float64 `json:"p50Ms"`
	P95Ms  float64 `json:"p95Ms"`
	P99Ms  float64 `json:"p99Ms"`
}

// JSONFormatter formats suite results as JSON
type JSONFormatter struct {
	writer io.Writer
	runID  string
	suite  string
	tests  []JSONTest
	stats  *JSONStats
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		tests:  make([]JSONTest, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	f.runID = result.RunID
	f.suite = result.Suite
	if result.Stats != nil {
		f.stats = &JSONStats{
			MinMs:  ms(result.Stats.Min),
			MaxMs:  ms(result.Stats.Max),
			MeanMs: ms(result.Stats.Mean),
			P50Ms:  ms(result.Stats.P50),
			P95Ms:  ms(result.Stats.P95),
			P99Ms:  ms(result.Stats.P99),
		}
	}

	for _, r := range result.Records {
		test := JSONTest{
			Name:      r.Name,
			Passed:    r.Passed(),
			Skipped:   r.Skipped,
			Duration:  ms(r.Duration),
			Error:     r.Error,
			ErrorKind: r.ErrorKind,
		}
		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			test.SkipReason = r.SkipReason
		}

		if len(r.Results) > 0 {
			test.Assertions = make([]JSONAssertion, len(r.Results))
			for i, a := range r.Results {
				test.Assertions[i] = JSONAssertion{
					Matcher:  a.Matcher,
					Negated:  a.Negated,
					Expected: a.Expected,
					Actual:   a.Actual,
					Passed:   a.Passed,
					Message:  a.Message,
				}
			}
		}

		f.tests = append(f.tests, test)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual test results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, t := range f.tests {
		if t.Skipped {
			skipped++
		} else if t.Passed {
			passed++
		} else {
			failed++
		}
	}

	doc := JSONOutput{
		RunID: f.runID,
		Suite: f.suite,
		Summary: JSONSummary{
			Total:   len(f.tests),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Tests:    f.tests,
		Duration: ms(totalDuration),
		Time:     time.Now().Format(time.RFC3339),
		Stats:    f.stats,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Load parses a JSON document previously written by the JSON formatter.
func Load(r io.Reader) (*JSONOutput, error) {
	var doc JSONOutput
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ToRunResult reconstructs a RunResult from a loaded JSON document so the
// other formatters can re-render it.
func ToRunResult(doc *JSONOutput) *runner.RunResult {
	result := &runner.RunResult{
		RunID:    doc.RunID,
		Suite:    doc.Suite,
		Passed:   doc.Summary.Passed,
		Failed:   doc.Summary.Failed,
		Skipped:  doc.Summary.Skipped,
		Duration: time.Duration(doc.Duration * float64(time.Millisecond)),
	}
	if doc.Stats != nil {
		result.Stats = &runner.Stats{
			Min:  time.Duration(doc.Stats.MinMs * float64(time.Millisecond)),
			Max:  time.Duration(doc.Stats.MaxMs * float64(time.Millisecond)),
			Mean: time.Duration(doc.Stats.MeanMs * float64(time.Millisecond)),
			P50:  time.Duration(doc.Stats.P50Ms * float64(time.Millisecond)),
			P95:  time.Duration(doc.Stats.P95Ms * float64(time.Millisecond)),
			P99:  time.Duration(doc.Stats.P99Ms * float64(time.Millisecond)),
		}
	}

	for _, t := range doc.Tests {
		rec := &runner.TestRecord{
			Name:       t.Name,
			Skipped:    t.Skipped,
			SkipReason: t.SkipReason,
			Error:      t.Error,
			ErrorKind:  t.ErrorKind,
			Duration:   time.Duration(t.Duration * float64(time.Millisecond)),
		}
		for _, a := range t.Assertions {
			rec.Results = append(rec.Results, &expect.Result{
				Matcher:  a.Matcher,
				Negated:  a.Negated,
				Expected: a.Expected,
				Actual:   a.Actual,
				Passed:   a.Passed,
				Message:  a.Message,
			})
		}
		result.Records = append(result.Records, rec)
	}
	return result
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
