package expect

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures reported results for assertions about reporting.
type recorder struct {
	results []*Result
}

func (r *recorder) Report(res *Result) { r.results = append(r.results, res) }

// requireUsageError asserts that fn raises a *UsageError.
func requireUsageError(t *testing.T, fn func()) *UsageError {
	t.Helper()
	var usage *UsageError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a usage error")
			ue, ok := r.(*UsageError)
			require.True(t, ok, "expected *UsageError, got %T: %v", r, r)
			usage = ue
		}()
		fn()
	}()
	return usage
}

func TestToBe_Primitives(t *testing.T) {
	tests := []struct {
		name    string
		subject any
		arg     any
		passed  bool
	}{
		{"equal ints", 4, 4, true},
		{"unequal ints", 4, 5, false},
		{"int vs float same value", 5, 5.0, true},
		{"strings", "beer", "beer", true},
		{"bools", true, true, true},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"NaN is NaN", math.NaN(), math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil, tt.subject).ToBe(tt.arg)
			assert.Equal(t, tt.passed, res.Passed, "Message: %s", res.Message)
		})
	}
}

func TestToBe_CompositesUseIdentity(t *testing.T) {
	a := map[string]any{"one": 1}
	b := map[string]any{"one": 1}

	assert.False(t, New(nil, a).ToBe(b).Passed, "distinct maps are not identical")
	assert.True(t, New(nil, a).ToBe(a).Passed, "a map is identical to itself")
	assert.True(t, New(nil, a).ToEqual(b).Passed, "but they are structurally equal")

	s1 := []int{1, 2, 3}
	s2 := []int{1, 2, 3}
	assert.False(t, New(nil, s1).ToBe(s2).Passed)
	assert.True(t, New(nil, s1).ToBe(s1).Passed)
	assert.True(t, New(nil, s1).ToEqual(s2).Passed)
}

func TestNullUndefinedDefined_Trichotomy(t *testing.T) {
	// For every value exactly one of null / undefined / defined-and-not-null
	// holds.
	var nilPtr *int
	values := []any{nil, nilPtr, Undefined, 0, "", false, "x", 3.14, []int(nil)}

	for _, v := range values {
		null := New(nil, v).ToBeNull().Passed
		undef := New(nil, v).ToBeUndefined().Passed
		definedNotNull := New(nil, v).ToBeDefined().Passed && !null

		count := 0
		for _, b := range []bool{null, undef, definedNotNull} {
			if b {
				count++
			}
		}
		assert.Equal(t, 1, count, "value %v: null=%v undefined=%v definedNotNull=%v",
			v, null, undef, definedNotNull)
	}
}

func TestToBeNull_Distinctions(t *testing.T) {
	assert.True(t, New(nil, nil).ToBeNull().Passed)
	assert.True(t, New(nil, (*int)(nil)).ToBeNull().Passed)
	assert.False(t, New(nil, false).ToBeNull().Passed, "false is not null")
	assert.False(t, New(nil, Undefined).ToBeNull().Passed, "undefined is not null")
	assert.False(t, New(nil, nil).ToBeUndefined().Passed, "null is not undefined")
	assert.True(t, New(nil, Undefined).ToBeUndefined().Passed)
	assert.False(t, New(nil, Undefined).ToBeDefined().Passed)
	assert.True(t, New(nil, nil).ToBeDefined().Passed, "null is defined")
}

func TestFalsyClassification(t *testing.T) {
	falsy := []any{false, 0, 0.0, "", nil, Undefined, math.NaN()}
	for _, v := range falsy {
		assert.True(t, New(nil, v).ToBeFalsy().Passed, "expected %v to be falsy", v)
		assert.False(t, New(nil, v).ToBeTruthy().Passed, "expected %v not to be truthy", v)
	}

	truthy := []any{true, 1, -1, 0.5, "0", "false", " ", []int{}, map[string]int{}, struct{}{}}
	for _, v := range truthy {
		assert.True(t, New(nil, v).ToBeTruthy().Passed, "expected %v to be truthy", v)
		assert.False(t, New(nil, v).ToBeFalsy().Passed, "expected %v not to be falsy", v)
	}
}

func TestOrdering(t *testing.T) {
	assert.True(t, New(nil, 10).ToBeGreaterThan(3).Passed)
	assert.False(t, New(nil, 3).ToBeGreaterThan(10).Passed)
	assert.True(t, New(nil, 10).ToBeGreaterThanOrEqual(10).Passed)
	assert.True(t, New(nil, 3).ToBeLessThan(10).Passed)
	assert.True(t, New(nil, 10).ToBeLessThanOrEqual(10).Passed)
	assert.True(t, New(nil, 2.5).ToBeLessThan(3).Passed, "mixed int and float compare")
}

func TestOrdering_Consistency(t *testing.T) {
	pairs := [][2]float64{{1, 2}, {2, 1}, {-5, 3}, {0.1, 0.2}, {100, -100}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		gt := New(nil, a).ToBeGreaterThan(b).Passed
		lt := New(nil, b).ToBeLessThan(a).Passed
		assert.Equal(t, gt, lt, "a=%v b=%v", a, b)
	}
}

func TestOrdering_NonNumericIsUsageError(t *testing.T) {
	ue := requireUsageError(t, func() {
		New(nil, "ten").ToBeGreaterThan(3)
	})
	assert.Equal(t, "toBeGreaterThan", ue.Matcher)

	requireUsageError(t, func() {
		New(nil, 10).ToBeLessThan("three")
	})
}

func TestToBeCloseTo(t *testing.T) {
	// Add through variables: the constant expression 0.1+0.2 would be folded
	// exactly and round to the same bits as the literal 0.3.
	tenth, fifth := 0.1, 0.2
	sum := tenth + fifth

	assert.False(t, New(nil, sum).ToBe(0.3).Passed, "exact equality trips on rounding error")
	assert.True(t, New(nil, sum).ToBeCloseTo(0.3).Passed)
	assert.True(t, New(nil, sum).ToBeCloseTo(0.3, 5).Passed)
	assert.False(t, New(nil, sum).ToBeCloseTo(0.3, 20).Passed,
		"demanding more precision than the rounding error eventually fails")
	assert.False(t, New(nil, 1.0).ToBeCloseTo(1.1).Passed)
	assert.True(t, New(nil, math.Inf(1)).ToBeCloseTo(math.Inf(1)).Passed)

	requireUsageError(t, func() {
		New(nil, "0.3").ToBeCloseTo(0.3)
	})
}

func TestToMatch(t *testing.T) {
	assert.False(t, New(nil, "team").ToMatch(regexp.MustCompile("I")).Passed,
		"there is no I in team")
	assert.True(t, New(nil, "Christoph").ToMatch(regexp.MustCompile("stop")).Passed)
	assert.True(t, New(nil, "Christoph").ToMatch("stop").Passed, "plain strings match as substrings")
	assert.False(t, New(nil, "team").ToMatch("I").Passed)

	requireUsageError(t, func() {
		New(nil, 42).ToMatch("4")
	})
	requireUsageError(t, func() {
		New(nil, "team").ToMatch(42)
	})
}

func TestToContain(t *testing.T) {
	shoppingList := []string{"diapers", "kleenex", "trash bags", "paper towels", "beer"}

	assert.True(t, New(nil, shoppingList).ToContain("beer").Passed)
	assert.False(t, New(nil, shoppingList).ToContain("wine").Passed)
	assert.True(t, New(nil, "Christoph").ToContain("stop").Passed)

	// Elements compare by structural equality.
	users := []map[string]any{{"name": "Ada"}, {"name": "Linus"}}
	assert.True(t, New(nil, users).ToContain(map[string]any{"name": "Ada"}).Passed)
	assert.True(t, New(nil, users).ToContainEqual(map[string]any{"name": "Linus"}).Passed)

	requireUsageError(t, func() {
		New(nil, 42).ToContain(4)
	})
	requireUsageError(t, func() {
		New(nil, "Christoph").ToContain(42)
	})
	requireUsageError(t, func() {
		New(nil, map[string]int{"a": 1}).ToContainEqual(1)
	})
}

func TestToHaveLength(t *testing.T) {
	assert.True(t, New(nil, "beer").ToHaveLength(4).Passed)
	assert.True(t, New(nil, []int{1, 2, 3}).ToHaveLength(3).Passed)
	assert.True(t, New(nil, map[string]int{"a": 1}).ToHaveLength(1).Passed)
	assert.False(t, New(nil, []int{1, 2, 3}).ToHaveLength(2).Passed)

	requireUsageError(t, func() {
		New(nil, 42).ToHaveLength(2)
	})
}

func TestToHaveProperty(t *testing.T) {
	user := map[string]any{
		"name": "Ada",
		"address": map[string]any{
			"city": "London",
		},
	}

	assert.True(t, New(nil, user).ToHaveProperty("name").Passed)
	assert.True(t, New(nil, user).ToHaveProperty("address.city").Passed)
	assert.False(t, New(nil, user).ToHaveProperty("address.zip").Passed)
	assert.True(t, New(nil, user).ToHaveProperty("address.city", "London").Passed)
	assert.False(t, New(nil, user).ToHaveProperty("address.city", "Paris").Passed)
	assert.True(t, New(nil, map[string]any{"n": 5}).ToHaveProperty("n", 5).Passed,
		"numbers survive the JSON round trip")
}

func TestProperty_MissingYieldsUndefined(t *testing.T) {
	user := map[string]any{"name": "Ada"}

	assert.True(t, New(nil, Property(user, "name")).ToBeDefined().Passed)
	assert.True(t, New(nil, Property(user, "age")).ToBeUndefined().Passed)
	assert.False(t, New(nil, Property(user, "age")).ToBeNull().Passed)
}

func TestToMatchSchema(t *testing.T) {
	schema := `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`

	assert.True(t, New(nil, map[string]any{"name": "Ada"}).ToMatchSchema(schema).Passed)

	res := New(nil, map[string]any{"age": 36}).ToMatchSchema(schema)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, "name")

	requireUsageError(t, func() {
		New(nil, map[string]any{}).ToMatchSchema(`{"type": 12}`)
	})
	requireUsageError(t, func() {
		New(nil, map[string]any{}).ToMatchSchema("no/such/schema.json")
	})
}

func TestNegationLaw(t *testing.T) {
	// For every matcher and valid input, not.M passes iff M fails.
	cases := []func(e *Expectation) *Result{
		func(e *Expectation) *Result { return e.ToBe(4) },
		func(e *Expectation) *Result { return e.ToEqual(4) },
		func(e *Expectation) *Result { return e.ToBeNull() },
		func(e *Expectation) *Result { return e.ToBeUndefined() },
		func(e *Expectation) *Result { return e.ToBeDefined() },
		func(e *Expectation) *Result { return e.ToBeTruthy() },
		func(e *Expectation) *Result { return e.ToBeFalsy() },
		func(e *Expectation) *Result { return e.ToBeGreaterThan(3) },
		func(e *Expectation) *Result { return e.ToBeLessThanOrEqual(3) },
		func(e *Expectation) *Result { return e.ToBeCloseTo(4.001) },
	}

	for _, subject := range []any{4, 3, 0} {
		for i, invoke := range cases {
			plain := invoke(New(nil, subject))
			negated := invoke(New(nil, subject).Not())
			assert.Equal(t, plain.Passed, !negated.Passed,
				"case %d subject %v", i, subject)
		}
	}
}

func TestNot_IsSideEffectFree(t *testing.T) {
	e := New(nil, 4)
	n := e.Not()

	assert.NotSame(t, e, n)
	assert.True(t, e.ToBe(4).Passed, "original expectation is unchanged")
	assert.False(t, n.ToBe(4).Passed)
	assert.True(t, n.Not().ToBe(4).Passed, "double negation restores meaning")
}

func TestDiagnosticMessages(t *testing.T) {
	res := New(nil, 4).ToBe(5)
	assert.Equal(t, "expected 4 to be 5", res.Message)

	res = New(nil, 5).Not().ToBe(5)
	assert.Equal(t, "expected 5 not to be 5", res.Message)

	res = New(nil, "team").ToMatch(regexp.MustCompile("I"))
	assert.Equal(t, `expected "team" to match /I/`, res.Message)

	res = New(nil, 4).ToBe(4)
	assert.Empty(t, res.Message, "messages are only built on failure")
}

func TestReporting(t *testing.T) {
	rec := &recorder{}
	e := New(rec, 4)

	e.ToBe(4)
	e.ToBe(5)
	e.Not().ToEqual(5)

	require.Len(t, rec.results, 3)
	assert.True(t, rec.results[0].Passed)
	assert.False(t, rec.results[1].Passed)
	assert.True(t, rec.results[2].Passed)
	assert.Equal(t, "toBe", rec.results[0].Matcher)
	assert.True(t, rec.results[2].Negated)
}
