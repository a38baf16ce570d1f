package runner

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats summarizes the distribution of test durations for one run.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
}

// computeStats folds non-skipped test durations into an HDR histogram.
// Returns nil when nothing ran.
func computeStats(records []*TestRecord) *Stats {
	// 1us to 60s range, 3 significant digits
	h := hdrhistogram.New(1, 60_000_000, 3)

	ran := 0
	for _, rec := range records {
		if rec.Skipped {
			continue
		}
		us := rec.Duration.Microseconds()
		if us < 1 {
			us = 1
		}
		_ = h.RecordValue(us)
		ran++
	}
	if ran == 0 {
		return nil
	}

	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	return &Stats{
		Min:  us(h.Min()),
		Max:  us(h.Max()),
		Mean: time.Duration(h.Mean()) * time.Microsecond,
		P50:  us(h.ValueAtQuantile(50)),
		P95:  us(h.ValueAtQuantile(95)),
		P99:  us(h.ValueAtQuantile(99)),
	}
}
