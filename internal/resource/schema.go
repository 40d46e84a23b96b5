package resource

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schema is a named JSON Schema definition for one response shape.
type schema struct {
	Name       string
	Definition map[string]any
}

var activitiesListSchema = schema{
	Name: "activities_list",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"body"},
		"properties": map[string]any{
			"body": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"items": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"activity_id", "activity_type"},
							"properties": map[string]any{
								"activity_id":   map[string]any{"type": "string"},
								"activity_type": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

var rockieSchema = schema{
	Name: "rockie",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"body"},
		"properties": map[string]any{
			"body": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tenant_id":     map[string]any{"type": "string"},
					"student_id":    map[string]any{"type": "string"},
					"creation_date": map[string]any{"type": "string"},
					"level":         map[string]any{"type": "integer"},
					"experience":    map[string]any{"type": "integer"},
					"rockie_data": map[string]any{
						"type": []any{"object", "null"},
						"properties": map[string]any{
							"rockie_name": map[string]any{"type": "string"},
							"evolution":   map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks raw against s.
func validate(s schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s response does not match schema: %w", s.Name, err)
	}
	return nil
}

func compiledSchema(s schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants the decoded form with float64 numbers.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.Name, compiled)
	return compiled, nil
}
