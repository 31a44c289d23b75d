package types

import (
	"encoding/json"
)

// JSONSchema represents a JSON Schema Draft 2020-12 document
type JSONSchema map[string]any

// ToJSONSchema converts a ParamSchema to JSON Schema format.
// Multi-valued arguments become an array schema whose items carry the
// per-value constraints.
func (p *ParamSchema) ToJSONSchema() JSONSchema {
	item := p.itemSchema()
	if !p.Array {
		if p.Description != "" {
			item["description"] = p.Description
		}
		return item
	}

	schema := JSONSchema{
		"type":  "array",
		"items": item,
	}
	if p.Description != "" {
		schema["description"] = p.Description
	}
	if p.MinItems != nil {
		schema["minItems"] = *p.MinItems
	}
	if p.MaxItems != nil {
		schema["maxItems"] = *p.MaxItems
	}
	return schema
}

// itemSchema builds the schema for a single value. An empty Type leaves the
// JSON type open, for values produced by custom converters.
func (p *ParamSchema) itemSchema() JSONSchema {
	schema := make(JSONSchema)
	if p.Type != "" {
		schema["type"] = jsonSchemaType(p.Type)
	}

	// Numeric constraints
	if p.Type == "" || p.Type == TypeInt || p.Type == TypeFloat {
		if p.Minimum != nil {
			schema["minimum"] = *p.Minimum
		}
		if p.Maximum != nil {
			schema["maximum"] = *p.Maximum
		}
	}

	if p.Pattern != nil {
		schema["pattern"] = *p.Pattern
	}

	// Durations always carry the duration format
	format := p.Format
	if format == nil && p.Type == TypeDuration {
		f := FormatCompactDuration
		format = &f
	}
	if format != nil {
		schema["format"] = string(*format)
	}

	return schema
}

// jsonSchemaType converts ParamType to JSON Schema type string
func jsonSchemaType(t ParamType) string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	default:
		// Durations validate on their canonical string form
		return "string"
	}
}

func (j JSONSchema) compactJSON() ([]byte, error) {
	return json.Marshal(j)
}
