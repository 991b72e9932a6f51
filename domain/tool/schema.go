package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema wraps JSON Schema for input/output validation.
type Schema struct {
	raw      json.RawMessage
	required []string
}

// NewSchema creates a schema from raw JSON.
func NewSchema(raw json.RawMessage) Schema {
	return Schema{raw: raw}
}

// EmptySchema returns a schema that accepts any input.
func EmptySchema() Schema {
	return Schema{raw: json.RawMessage(`{}`)}
}

// ObjectSchema returns a schema for an object with the given properties.
func ObjectSchema(properties map[string]json.RawMessage, required []string) Schema {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	raw, _ := json.Marshal(schema)
	return Schema{raw: raw, required: required}
}

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Param describes one named tool parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	// Default is advertised in the schema. Optional parameters without a
	// default are left to the zero value by the handler.
	Default any
}

// ParamSchema builds an object schema from an ordered parameter list.
func ParamSchema(params ...Param) (Schema, error) {
	props := make(map[string]json.RawMessage, len(params))
	var required []string

	for _, p := range params {
		if _, dup := props[p.Name]; dup {
			return Schema{}, fmt.Errorf("%w: %s", ErrDuplicateParam, p.Name)
		}

		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if p.Type == TypeInteger {
			prop["minimum"] = 0
		}
		raw, err := json.Marshal(prop)
		if err != nil {
			return Schema{}, fmt.Errorf("encode parameter %s: %w", p.Name, err)
		}
		props[p.Name] = raw

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return ObjectSchema(props, required), nil
}

// Raw returns the underlying JSON schema.
func (s Schema) Raw() json.RawMessage {
	return s.raw
}

// Required returns the names of the required properties, if known.
func (s Schema) Required() []string {
	return s.required
}

// IsEmpty returns true if the schema is empty or nil.
func (s Schema) IsEmpty() bool {
	return len(s.raw) == 0 || string(s.raw) == "{}" || string(s.raw) == "null"
}

// Validate checks that data is a JSON object carrying every required
// property. Property types are checked when the handler decodes the input.
func (s Schema) Validate(data json.RawMessage) error {
	if s.IsEmpty() {
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(normalizeInput(data), &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if obj == nil {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}
	for _, name := range s.required {
		v, ok := obj[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("%w: missing required parameter %q", ErrInvalidInput, name)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.raw == nil {
		return []byte("{}"), nil
	}
	return s.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// DecodeInput unmarshals tool input into v. Empty input decodes as an empty
// object. Unknown fields are rejected.
func DecodeInput(input json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(normalizeInput(input)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func normalizeInput(input json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(input)) == 0 {
		return json.RawMessage(`{}`)
	}
	return input
}
