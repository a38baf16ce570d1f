package expect

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type configError struct{ key string }

func (e *configError) Error() string { return "missing config key " + e.key }

var errNoTeeth = errors.New("yuck, octopus flavor")

func compileAndroid() error { return errors.New("you are using the wrong JDK") }

func drinkFlavor(flavor string) func() {
	return func() {
		if flavor == "octopus" {
			panic(errNoTeeth)
		}
	}
}

func TestToThrow(t *testing.T) {
	assert.True(t, New(nil, compileAndroid).ToThrow().Passed)
	assert.True(t, New(nil, drinkFlavor("octopus")).ToThrow().Passed)
	assert.False(t, New(nil, drinkFlavor("vanilla")).ToThrow().Passed)
	assert.True(t, New(nil, drinkFlavor("vanilla")).Not().ToThrow().Passed)
	assert.True(t, New(nil, func() { panic("boom") }).ToThrow().Passed,
		"non-error panic values count as thrown")
}

func TestToThrow_ExactMessage(t *testing.T) {
	assert.True(t, New(nil, compileAndroid).ToThrow("you are using the wrong JDK").Passed)
	assert.False(t, New(nil, compileAndroid).ToThrow("wrong JDK").Passed,
		"string arguments match the whole message, not a substring")
	assert.False(t, New(nil, drinkFlavor("vanilla")).ToThrow("anything").Passed)
}

func TestToThrow_Pattern(t *testing.T) {
	assert.True(t, New(nil, compileAndroid).ToThrow(regexp.MustCompile(`JDK$`)).Passed)
	assert.False(t, New(nil, compileAndroid).ToThrow(regexp.MustCompile(`^JDK`)).Passed)
}

func TestToThrow_ErrorValue(t *testing.T) {
	assert.True(t, New(nil, drinkFlavor("octopus")).ToThrow(errNoTeeth).Passed)

	wrapped := func() error { return fmt.Errorf("drinking: %w", errNoTeeth) }
	assert.True(t, New(nil, wrapped).ToThrow(errNoTeeth).Passed, "wrapped errors satisfy errors.Is")

	byType := func() error { return &configError{key: "port"} }
	assert.True(t, New(nil, byType).ToThrow(&configError{}).Passed,
		"an error of the same dynamic type matches")
	assert.False(t, New(nil, byType).ToThrow(errNoTeeth).Passed)
}

func TestToThrow_FailureDetail(t *testing.T) {
	res := New(nil, compileAndroid).ToThrow("using the right JDK")
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, `it threw "you are using the wrong JDK"`)

	res = New(nil, drinkFlavor("vanilla")).ToThrow("anything")
	assert.Contains(t, res.Message, "it did not throw")
}

func TestToThrow_Misuse(t *testing.T) {
	requireUsageError(t, func() {
		New(nil, "not callable").ToThrow()
	})
	requireUsageError(t, func() {
		New(nil, func(x int) {}).ToThrow()
	})
	requireUsageError(t, func() {
		New(nil, compileAndroid).ToThrow(42)
	})
	requireUsageError(t, func() {
		New(nil, compileAndroid).ToThrow("a", "b")
	})
}

func TestToThrow_DoesNotSwallowMisuseInsideBody(t *testing.T) {
	requireUsageError(t, func() {
		New(nil, func() {
			New(nil, "ten").ToBeGreaterThan(3)
		}).ToThrow()
	})
}
