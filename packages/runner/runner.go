package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Venkat-18/jest/packages/expect"
	"github.com/Venkat-18/jest/packages/snapshot"
)

const (
	// DefaultConcurrency is the default number of concurrent test blocks in
	// parallel mode.
	DefaultConcurrency = 5
)

// Config controls how a Suite runs.
type Config struct {
	Bail            bool
	Verbose         bool
	NameFilter      string
	Parallel        bool
	Concurrency     int
	RatePerSec      float64
	SnapshotDir     string
	UpdateSnapshots bool
}

// Suite is an ordered collection of registered test blocks.
type Suite struct {
	name  string
	tests []*testCase
}

type testCase struct {
	name       string
	fn         func(*T)
	skip       bool
	skipReason string
	only       bool
}

// NewSuite creates an empty suite with the given name.
func NewSuite(name string) *Suite {
	return &Suite{name: name}
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Test registers a test block.
func (s *Suite) Test(name string, fn func(*T)) {
	s.tests = append(s.tests, &testCase{name: name, fn: fn})
}

// Skip registers a test block that is recorded as skipped with a reason.
func (s *Suite) Skip(name, reason string) {
	s.tests = append(s.tests, &testCase{name: name, skip: true, skipReason: reason})
}

// Only registers a test block and restricts the run to Only-marked blocks.
func (s *Suite) Only(name string, fn func(*T)) {
	s.tests = append(s.tests, &testCase{name: name, fn: fn, only: true})
}

// RunResult aggregates the records of one suite run.
type RunResult struct {
	RunID    string
	Suite    string
	Records  []*TestRecord
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
	Stats    *Stats
}

// Run executes the suite's test blocks and returns their records. A nil
// config runs sequentially with defaults. The context gates parallel
// scheduling only; test bodies themselves are not cancelled.
func (s *Suite) Run(ctx context.Context, cfg *Config) (*RunResult, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	var snapshots *snapshot.Manager
	if cfg.SnapshotDir != "" {
		snapshots = snapshot.NewManager(cfg.SnapshotDir, cfg.UpdateSnapshots)
	}

	start := time.Now()
	result := &RunResult{
		RunID: uuid.NewString(),
		Suite: s.name,
	}

	hasOnly := false
	for _, tc := range s.tests {
		if tc.only {
			hasOnly = true
			break
		}
	}

	// Records keep registration order; skipped slots are filled up front and
	// the rest after their test ran.
	records := make([]*TestRecord, len(s.tests))
	var runnable []indexedCase
	for i, tc := range s.tests {
		switch {
		case tc.skip:
			records[i] = &TestRecord{Name: tc.name, Skipped: true, SkipReason: tc.skipReason}
		case hasOnly && !tc.only:
			records[i] = &TestRecord{Name: tc.name, Skipped: true, SkipReason: "filtered out"}
		case cfg.NameFilter != "" && !strings.Contains(tc.name, cfg.NameFilter):
			records[i] = &TestRecord{Name: tc.name, Skipped: true, SkipReason: "filtered out"}
		default:
			runnable = append(runnable, indexedCase{idx: i, tc: tc})
		}
	}

	var err error
	if cfg.Parallel {
		err = s.runParallel(ctx, cfg, runnable, records, snapshots)
	} else {
		err = s.runSequential(ctx, cfg, runnable, records, snapshots)
	}
	if err != nil {
		return nil, err
	}
	result.Records = records

	for _, rec := range result.Records {
		switch {
		case rec.Skipped:
			result.Skipped++
		case rec.Passed():
			result.Passed++
		default:
			result.Failed++
		}
	}
	result.Duration = time.Since(start)
	result.Stats = computeStats(result.Records)

	if snapshots != nil && cfg.UpdateSnapshots {
		if _, err := snapshots.PruneObsolete(); err != nil {
			return result, fmt.Errorf("pruning obsolete snapshots: %w", err)
		}
	}

	return result, nil
}

// indexedCase pairs a runnable test with its slot in the records slice.
type indexedCase struct {
	idx int
	tc  *testCase
}

func (s *Suite) runSequential(ctx context.Context, cfg *Config, tests []indexedCase, records []*TestRecord, snapshots *snapshot.Manager) error {
	bailed := false

	for _, ic := range tests {
		if bailed {
			records[ic.idx] = &TestRecord{
				Name: ic.tc.name, Skipped: true, SkipReason: "bailed",
			}
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rec := s.runTest(ic.tc, cfg, snapshots)
		records[ic.idx] = rec

		if cfg.Bail && !rec.Passed() {
			bailed = true
		}
	}
	return nil
}

func (s *Suite) runParallel(ctx context.Context, cfg *Config, tests []indexedCase, records []*TestRecord, snapshots *snapshot.Manager) error {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var bailed atomic.Bool

	for _, ic := range tests {
		if bailed.Load() {
			records[ic.idx] = &TestRecord{Name: ic.tc.name, Skipped: true, SkipReason: "bailed"}
			continue
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				records[ic.idx] = &TestRecord{Name: ic.tc.name, Skipped: true, SkipReason: "cancelled"}
				continue
			}
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			records[ic.idx] = &TestRecord{Name: ic.tc.name, Skipped: true, SkipReason: "cancelled"}
			continue
		}

		wg.Add(1)
		go func(ic indexedCase) {
			defer wg.Done()
			defer func() { <-sem }()

			rec := s.runTest(ic.tc, cfg, snapshots)
			records[ic.idx] = rec
			if cfg.Bail && !rec.Passed() {
				bailed.Store(true)
			}
		}(ic)
	}

	wg.Wait()
	return ctx.Err()
}

// runTest executes one test block with a fresh collector, recovering usage
// errors and unhandled panics at the block boundary.
func (s *Suite) runTest(tc *testCase, cfg *Config, snapshots *snapshot.Manager) *TestRecord {
	collector := NewCollector()
	rec := collector.Begin(tc.name)

	t := &T{
		name:      tc.name,
		suite:     s.name,
		collector: collector,
		snapshots: snapshots,
	}

	start := time.Now()
	err := invokeBody(tc.fn, t)
	rec = collector.End(err)
	rec.Duration = time.Since(start)
	return rec
}

func invokeBody(fn func(*T), t *T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ue, ok := r.(*expect.UsageError); ok {
				err = ue
				return
			}
			err = fmt.Errorf("test body panicked: %v", r)
		}
	}()
	fn(t)
	return nil
}
