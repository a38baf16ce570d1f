package expect

import (
	"fmt"
	"sync"
)

// Matcher is a custom evaluator registered under a name and invoked through
// (*Expectation).To. It returns whether the comparison held and a phrase
// describing the expectation (e.g. "to be a palindrome"), which is composed
// into the diagnostic for either polarity.
type Matcher func(subject any, args ...any) (ok bool, phrase string)

var registry = struct {
	mu sync.RWMutex
	m  map[string]Matcher
}{m: make(map[string]Matcher)}

// Register adds a custom matcher under the given name. Registering a name
// twice is an error; built-in matcher methods are not part of the table and
// cannot be shadowed.
func Register(name string, m Matcher) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.m[name]; exists {
		return fmt.Errorf("matcher already registered: %s", name)
	}
	registry.m[name] = m
	return nil
}

// To dispatches to a matcher registered with Register. An unknown name is a
// UsageError.
func (e *Expectation) To(name string, args ...any) *Result {
	registry.mu.RLock()
	m, exists := registry.m[name]
	registry.mu.RUnlock()

	if !exists {
		panicUsage(name, "unknown matcher")
	}

	ok, phrase := m(e.subject, args...)
	var expected any
	if len(args) > 0 {
		expected = args[0]
	}
	return e.verify(name, ok, expected, phrase)
}
