package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://drill/deck.json"

// Schema is the JSON Schema every deck document must satisfy before it is
// decoded. Card ids may be strings or integers; unknown fields are allowed.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"days": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"cards"},
				"properties": map[string]any{
					"day": map[string]any{"type": "integer", "minimum": 0},
					"cards": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/$defs/id"},
					},
				},
			},
		},
		"cards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id":    map[string]any{"$ref": "#/$defs/id"},
					"title": map[string]any{"type": "string"},
					"lines": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
	"$defs": map[string]any{
		"id": map[string]any{
			"type":      []any{"string", "integer"},
			"minLength": 1,
		},
	},
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

// compiledSchema compiles Schema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go literal through encoding/json.
		raw, err := json.Marshal(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal deck schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks raw JSON against Schema.
func Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile deck schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
