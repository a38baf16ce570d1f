package expect

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ToMatchSchema validates the subject, marshaled to JSON, against a JSON
// Schema. The schema argument is either an inline schema document (first
// non-space byte '{') or a path to a schema file.
func (e *Expectation) ToMatchSchema(schema string) *Result {
	const matcher = "toMatchSchema"

	schemaData := []byte(schema)
	if !strings.HasPrefix(strings.TrimSpace(schema), "{") {
		data, err := os.ReadFile(schema)
		if err != nil {
			panicUsage(matcher, "reading schema file: %v", err)
		}
		schemaData = data
	}

	actualJSON, err := json.Marshal(e.subject)
	if err != nil {
		panicUsage(matcher, "subject is not JSON-serializable: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(actualJSON),
	)
	if err != nil {
		panicUsage(matcher, "invalid schema: %v", err)
	}

	phrase := "to match the schema"
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		phrase = fmt.Sprintf("to match the schema: %s", strings.Join(details, "; "))
	}
	return e.verify(matcher, result.Valid(), schema, phrase)
}
