package jest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Venkat-18/jest/packages/core/config"
	"github.com/Venkat-18/jest/packages/history"
	"github.com/Venkat-18/jest/packages/output"
	"github.com/Venkat-18/jest/packages/runner"
)

func mathSuite() *runner.Suite {
	s := runner.NewSuite("math")
	s.Test("two plus two", func(t *runner.T) {
		t.Expect(2 + 2).ToBe(4)
		t.Expect(2 + 2).Not().ToBe(5)
	})
	s.Test("off by one", func(t *runner.T) {
		t.Expect(2 + 2).ToBe(5)
	})
	return s
}

func TestRunTo_ConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.NoColor = config.BoolPtr(true)

	result, err := RunTo(context.Background(), &buf, mathSuite(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	out := buf.String()
	assert.Contains(t, out, "Suite: math")
	assert.Contains(t, out, "✓ two plus two")
	assert.Contains(t, out, "expected 4 to be 5")
}

func TestRunTo_TAPReporter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Reporters = []string{"tap"}

	_, err := RunTo(context.Background(), &buf, mathSuite(), cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TAP version 13")
	assert.Contains(t, out, "ok 1 - two plus two")
	assert.Contains(t, out, "not ok 2 - off by one")
}

func TestRunTo_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Reporters = []string{"tap"}
	cfg.OutputDir = dir

	result, err := RunTo(context.Background(), &bytes.Buffer{}, mathSuite(), cfg)
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	defer file.Close()

	doc, err := output.Load(file)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, doc.RunID)
	assert.Equal(t, 2, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestRunTo_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfg := config.DefaultConfig()
	cfg.Reporters = []string{"tap"}
	cfg.HistoryPath = dbPath

	result, err := RunTo(context.Background(), &bytes.Buffer{}, mathSuite(), cfg)
	require.NoError(t, err)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.RunID, runs[0].ID)
	assert.Equal(t, 1, runs[0].Failed)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(&runner.RunResult{Passed: 3}))
	assert.Equal(t, 1, ExitCode(&runner.RunResult{Passed: 2, Failed: 1}))
	assert.Equal(t, 0, ExitCode(&runner.RunResult{Skipped: 2}), "skips alone do not fail the run")
	assert.Equal(t, 1, ExitCode(nil))
}
