// Package snapshot stores and compares per-suite test snapshots.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
)

const (
	// SnapshotDir is the directory name for storing snapshots
	SnapshotDir = "__snapshots__"
	// SnapshotExt is the file extension for snapshot files
	SnapshotExt = ".snap.json"
)

// Manager handles snapshot storage and comparison. It is safe for
// concurrent use by parallel tests.
type Manager struct {
	baseDir    string
	updateMode bool

	mu     sync.Mutex
	loaded map[string]map[string]any // file -> {key -> value}
	seen   map[string]map[string]bool
}

// NewManager creates a snapshot manager rooted at baseDir. In update mode,
// missing snapshots are created and mismatched ones rewritten.
func NewManager(baseDir string, updateMode bool) *Manager {
	return &Manager{
		baseDir:    baseDir,
		updateMode: updateMode,
		loaded:     make(map[string]map[string]any),
		seen:       make(map[string]map[string]bool),
	}
}

// Result represents the outcome of a snapshot comparison.
type Result struct {
	Passed     bool
	Message    string
	Expected   any
	Actual     any
	IsNew      bool
	WasUpdated bool
}

// Compare checks an actual value against the snapshot stored for the given
// suite, test and optional label.
func (m *Manager) Compare(suite, test, label string, actual any) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &Result{Actual: actual}

	file := m.snapshotFile(suite)
	key := snapshotKey(test, label)

	snapshots, err := m.load(file)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load snapshots: %v", err)
		return result
	}

	if m.seen[file] == nil {
		m.seen[file] = make(map[string]bool)
	}
	m.seen[file][key] = true

	expected, exists := snapshots[key]
	if !exists {
		if m.updateMode {
			snapshots[key] = actual
			if err := m.save(file, snapshots); err != nil {
				result.Message = fmt.Sprintf("failed to save snapshot: %v", err)
				return result
			}
			result.Passed = true
			result.IsNew = true
			result.Expected = actual
			result.Message = "new snapshot created"
			return result
		}

		result.Message = "snapshot does not exist (run in update mode to create it)"
		return result
	}

	result.Expected = expected

	if normalizedEqual(expected, actual) {
		result.Passed = true
		return result
	}

	if m.updateMode {
		snapshots[key] = actual
		if err := m.save(file, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to update snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.WasUpdated = true
		result.Message = "snapshot updated"
		return result
	}

	result.Message = fmt.Sprintf("snapshot mismatch: stored %v, got %v", expected, actual)
	return result
}

// TouchTest marks every snapshot stored for the given test, labeled ones
// included, as in use. The CLI prune command uses it to reconcile stored
// snapshots against a saved run document without re-comparing values.
func (m *Manager) TouchTest(suite, test string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file := m.snapshotFile(suite)
	snapshots, err := m.load(file)
	if err != nil {
		return fmt.Errorf("loading snapshots for %s: %w", suite, err)
	}

	if m.seen[file] == nil {
		m.seen[file] = make(map[string]bool)
	}
	for key := range snapshots {
		if key == test || strings.HasPrefix(key, test+"::") {
			m.seen[file][key] = true
		}
	}
	return nil
}

// Obsolete returns the keys of stored snapshots that no Compare call has
// touched since the manager was created, grouped by snapshot file.
func (m *Manager) Obsolete() map[string][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	obsolete := make(map[string][]string)
	for file, snapshots := range m.loaded {
		for key := range snapshots {
			if !m.seen[file][key] {
				obsolete[file] = append(obsolete[file], key)
			}
		}
	}
	return obsolete
}

// PruneObsolete removes untouched snapshot entries from their files and
// returns how many were removed.
func (m *Manager) PruneObsolete() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for file, snapshots := range m.loaded {
		pruned := false
		for key := range snapshots {
			if !m.seen[file][key] {
				delete(snapshots, key)
				removed++
				pruned = true
			}
		}
		if pruned {
			if err := m.save(file, snapshots); err != nil {
				return removed, fmt.Errorf("pruning %s: %w", file, err)
			}
		}
	}
	return removed, nil
}

func (m *Manager) snapshotFile(suite string) string {
	name := sanitizeName(suite)
	if name == "" {
		name = "default"
	}
	return filepath.Join(m.baseDir, SnapshotDir, name+SnapshotExt)
}

func snapshotKey(test, label string) string {
	if label != "" {
		return fmt.Sprintf("%s::%s", test, label)
	}
	return test
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}

func (m *Manager) load(path string) (map[string]any, error) {
	if cached, ok := m.loaded[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snapshots := make(map[string]any)
			m.loaded[path] = snapshots
			return snapshots, nil
		}
		return nil, err
	}

	var snapshots map[string]any
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, err
	}

	m.loaded[path] = snapshots
	return snapshots, nil
}

func (m *Manager) save(path string, snapshots map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return err
	}

	m.loaded[path] = snapshots
	return os.WriteFile(path, data, 0644)
}

// normalizedEqual compares values after a JSON round trip, so stored
// snapshots (always JSON) compare cleanly against live Go values.
func normalizedEqual(a, b any) bool {
	aJSON, _ := json.Marshal(a)
	bJSON, _ := json.Marshal(b)

	var aVal, bVal any
	if err := json.Unmarshal(aJSON, &aVal); err == nil {
		a = aVal
	}
	if err := json.Unmarshal(bJSON, &bVal); err == nil {
		b = bVal
	}

	return reflect.DeepEqual(a, b)
}
