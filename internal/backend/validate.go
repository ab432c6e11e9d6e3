package backend

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const dailySchemaURL = "schema://daily_problem.json"

// dailySchema describes the recommendation payload. The identifier may come
// as "id" or "problem_id".
const dailySchema = `{
  "type": "object",
  "properties": {
    "id":         {"type": "string", "minLength": 1},
    "problem_id": {"type": "string", "minLength": 1},
    "name":       {"type": "string"},
    "rating":     {"type": "integer", "minimum": 0},
    "tags":       {"type": ["array", "null"], "items": {"type": "string"}}
  },
  "anyOf": [
    {"required": ["id"]},
    {"required": ["problem_id"]}
  ]
}`

var (
	dailyOnce     sync.Once
	dailyCompiled *jsonschema.Schema
	dailyErr      error
)

func compiledDailySchema() (*jsonschema.Schema, error) {
	dailyOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(dailySchema))
		if err != nil {
			dailyErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(dailySchemaURL, doc); err != nil {
			dailyErr = fmt.Errorf("add resource: %w", err)
			return
		}
		dailyCompiled, dailyErr = c.Compile(dailySchemaURL)
	})
	return dailyCompiled, dailyErr
}

// validateDaily checks a raw daily payload against dailySchema.
func validateDaily(raw []byte) error {
	sch, err := compiledDailySchema()
	if err != nil {
		return fmt.Errorf("compile daily schema: %w", err)
	}

	// UnmarshalJSON keeps numbers as json.Number so "integer" is checked exactly.
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
