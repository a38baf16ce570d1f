package runner

import (
	"github.com/Venkat-18/jest/packages/expect"
	"github.com/Venkat-18/jest/packages/snapshot"
)

// T is the per-test execution context handed to every test body. It owns
// the block's Collector and implements expect.Reporter, so expectations
// created through Expect land in this test's record and nowhere else.
type T struct {
	name      string
	suite     string
	collector *Collector
	snapshots *snapshot.Manager
}

// Name returns the test block's name.
func (t *T) Name() string { return t.name }

// Expect wraps a subject value in an Expectation reporting into this test's
// record.
func (t *T) Expect(subject any) *expect.Expectation {
	return expect.New(t, subject)
}

// Report implements expect.Reporter.
func (t *T) Report(res *expect.Result) {
	t.collector.Report(res)
}

// CompareSnapshot implements expect.SnapshotComparer. Without configured
// snapshot storage every snapshot comparison fails with an explanation.
func (t *T) CompareSnapshot(label string, actual any) (bool, string) {
	if t.snapshots == nil {
		return false, "snapshot storage not configured (set Config.SnapshotDir)"
	}
	res := t.snapshots.Compare(t.suite, t.name, label, actual)
	return res.Passed, res.Message
}
