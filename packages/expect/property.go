package expect

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Property looks up a dotted path inside a JSON-serializable value and
// returns what it finds. A missing path yields the Undefined sentinel, so
// the result composes with ToBeUndefined and ToBeDefined.
func Property(subject any, path string) any {
	data, err := json.Marshal(subject)
	if err != nil {
		return Undefined
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return Undefined
	}
	return res.Value()
}

// ToHaveProperty passes iff the subject, viewed as JSON, has a value at the
// given dotted path. With a second argument the value must also be deeply
// equal to it.
func (e *Expectation) ToHaveProperty(path string, value ...any) *Result {
	const matcher = "toHaveProperty"
	data, err := json.Marshal(e.subject)
	if err != nil {
		panicUsage(matcher, "subject is not JSON-serializable: %v", err)
	}
	if len(value) > 1 {
		panicUsage(matcher, "at most one expected value may be given, got %d", len(value))
	}

	res := gjson.GetBytes(data, path)
	if len(value) == 0 {
		return e.verify(matcher, res.Exists(), path,
			fmt.Sprintf("to have property %q", path))
	}

	pass := res.Exists() && deepEqual(res.Value(), value[0])
	return e.verify(matcher, pass, value[0],
		fmt.Sprintf("to have property %q equal to %s", path, formatValue(value[0])))
}
