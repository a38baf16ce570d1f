// Package jest wires suites, reporters, snapshots and run history together.
// A test program registers blocks on a runner.Suite and hands it to Run:
//
//	s := runner.NewSuite("math")
//	s.Test("two plus two", func(t *runner.T) {
//		t.Expect(2 + 2).ToBe(4)
//		t.Expect(2 + 2).Not().ToBe(5)
//	})
//	res, err := jest.Run(context.Background(), s, nil)
package jest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Venkat-18/jest/packages/core/config"
	"github.com/Venkat-18/jest/packages/history"
	"github.com/Venkat-18/jest/packages/output"
	"github.com/Venkat-18/jest/packages/runner"
)

// Run executes the suite with the given configuration (nil means defaults),
// renders the configured reporters to stdout, and records the run into the
// optional JSON artifact and history database.
func Run(ctx context.Context, s *runner.Suite, cfg *config.Config) (*runner.RunResult, error) {
	return RunTo(ctx, os.Stdout, s, cfg)
}

// RunTo is Run with reporter output directed to w.
func RunTo(ctx context.Context, w io.Writer, s *runner.Suite, cfg *config.Config) (*runner.RunResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	runCfg := &runner.Config{
		Bail:            cfg.GetBail(),
		Verbose:         cfg.GetVerbose(),
		NameFilter:      cfg.NameFilter,
		Parallel:        cfg.GetParallel(),
		Concurrency:     cfg.Concurrency,
		RatePerSec:      cfg.RatePerSec,
		SnapshotDir:     cfg.SnapshotDir,
		UpdateSnapshots: cfg.GetUpdateSnapshots(),
	}

	result, err := s.Run(ctx, runCfg)
	if err != nil {
		return nil, fmt.Errorf("running suite %s: %w", s.Name(), err)
	}

	reporters := cfg.Reporters
	if len(reporters) == 0 {
		reporters = []string{"console"}
	}
	for _, name := range reporters {
		formatter := newFormatter(name, w, cfg)
		formatter.FormatResult(result)
		if flushable, ok := formatter.(output.Flushable); ok {
			if err := flushable.Flush(result.Duration); err != nil {
				return result, fmt.Errorf("flushing %s reporter: %w", name, err)
			}
		}
	}

	if cfg.OutputDir != "" {
		if err := writeArtifact(cfg.OutputDir, result); err != nil {
			return result, err
		}
	}

	if cfg.HistoryPath != "" {
		if err := appendHistory(cfg.HistoryPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record run history: %v\n", err)
		}
	}

	return result, nil
}

func newFormatter(name string, w io.Writer, cfg *config.Config) output.Formatter {
	switch name {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w))
	case "junit":
		return output.NewJUnitFormatter(output.JUnitWithWriter(w))
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w))
	default:
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(cfg.GetVerbose()),
			output.WithNoColor(cfg.GetNoColor()),
		)
	}
}

// writeArtifact stores the machine-readable run document, which the jest
// CLI report and history commands consume.
func writeArtifact(dir string, result *runner.RunResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, "results.json")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results artifact: %w", err)
	}
	defer file.Close()

	formatter := output.NewJSONFormatter(output.JSONWithWriter(file))
	formatter.FormatResult(result)
	return formatter.Flush(result.Duration)
}

func appendHistory(path string, result *runner.RunResult) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Append(result)
}

// ExitCode maps a run result to a process exit code: 0 when everything
// passed, 1 otherwise.
func ExitCode(result *runner.RunResult) int {
	if result == nil || result.Failed > 0 {
		return 1
	}
	return 0
}
