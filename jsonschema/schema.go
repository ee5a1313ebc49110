package jsonschema

import (
	"github.com/goccy/go-json"
)

// Draft is the dialect URI written to the root of exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is the subset of JSON Schema 2020-12 produced by schema export.
// A Schema with Always set renders as the boolean schema true or false and
// ignores every other field.
type Schema struct {
	Always *bool `json:"-"`

	// Core
	SchemaURI string `json:"$schema,omitempty"`
	Type      string `json:"type,omitempty"`
	Format    string `json:"format,omitempty"`
	Const     any    `json:"const,omitempty"`
	Enum      []any  `json:"enum,omitempty"`

	// String
	Pattern   string `json:"pattern,omitempty"`
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       *Schema   `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Bool returns the boolean schema b.
func Bool(b bool) *Schema { return &Schema{Always: &b} }

// IsBool reports whether s is a boolean schema, and its value.
func (s *Schema) IsBool() (value, ok bool) {
	if s == nil || s.Always == nil {
		return false, false
	}
	return *s.Always, true
}

type plain Schema

// MarshalJSON renders boolean schemas as bare true/false.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if b, ok := s.IsBool(); ok {
		if b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}
	return json.Marshal((*plain)(s))
}

// Marshal renders s as JSON with object keys in a stable order. indent
// selects two-space indented output.
func Marshal(s *Schema, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}
