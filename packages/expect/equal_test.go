package expect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type address struct {
	City string
	Zip  string
}

type person struct {
	Name    string
	Age     int
	Address *address
	Tags    []string
}

func TestDeepEqual_Structs(t *testing.T) {
	a := person{Name: "Ada", Age: 36, Address: &address{City: "London"}, Tags: []string{"math"}}
	b := person{Name: "Ada", Age: 36, Address: &address{City: "London"}, Tags: []string{"math"}}
	c := person{Name: "Ada", Age: 36, Address: &address{City: "Paris"}, Tags: []string{"math"}}

	assert.True(t, deepEqual(a, b))
	assert.False(t, deepEqual(a, c))
	assert.True(t, deepEqual(&a, &b), "pointers compare by pointee")
}

func TestDeepEqual_NumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int and float64", 5, 5.0, true},
		{"int and int64", 5, int64(5), true},
		{"uint and int", uint(7), 7, true},
		{"float32 and float64", float32(1.5), 1.5, true},
		{"different values", 5, 6.0, false},
		{"NaN equals NaN", math.NaN(), math.NaN(), true},
		{"number and string", 5, "5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deepEqual(tt.a, tt.b))
		})
	}
}

func TestDeepEqual_Containers(t *testing.T) {
	assert.True(t, deepEqual([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.False(t, deepEqual([]int{1, 2, 3}, []int{1, 2}))
	assert.False(t, deepEqual([]int(nil), []int{}), "nil and empty slices differ")
	assert.True(t, deepEqual(
		map[string]any{"a": []any{1.0, "x"}},
		map[string]any{"a": []any{1, "x"}},
	))
	assert.False(t, deepEqual(map[string]int{"a": 1}, map[string]int{"a": 1, "b": 2}))
}

func TestDeepEqual_UndefinedEntriesAreAbsent(t *testing.T) {
	// A map entry explicitly set to Undefined compares equal to the entry
	// being missing, on either side.
	withEntry := map[string]any{"name": "Ada", "age": Undefined}
	without := map[string]any{"name": "Ada"}

	assert.True(t, deepEqual(withEntry, without))
	assert.True(t, deepEqual(without, withEntry))
	assert.False(t, deepEqual(map[string]any{"age": nil}, without),
		"an explicit null entry is present")
}

func TestDeepEqual_Cycles(t *testing.T) {
	type node struct {
		Value int
		Next  *node
	}

	a := &node{Value: 1}
	a.Next = a
	b := &node{Value: 1}
	b.Next = b

	assert.True(t, deepEqual(a, b), "isomorphic cycles compare equal")

	c := &node{Value: 2}
	c.Next = c
	assert.False(t, deepEqual(a, c))

	m1 := map[string]any{}
	m1["self"] = m1
	m2 := map[string]any{}
	m2["self"] = m2
	assert.True(t, deepEqual(m1, m2))
}

func TestDeepEqual_Properties(t *testing.T) {
	values := []any{
		nil, 0, 1, "x", []int{1, 2}, map[string]any{"k": "v"},
		person{Name: "Ada"}, Undefined,
	}

	for _, v := range values {
		assert.True(t, deepEqual(v, v), "reflexivity for %v", v)
	}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, deepEqual(a, b), deepEqual(b, a), "symmetry for %v / %v", a, b)
		}
	}
}
