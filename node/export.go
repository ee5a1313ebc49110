package node

import (
	"github.com/reoring/entschema/entity"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// ExportJSONSchema renders n as a JSON Schema 2020-12 document. Boolean
// schemas are returned as they are.
func ExportJSONSchema(n Node) (*js.Schema, error) {
	s, err := orTrue(n).JSONSchema()
	if err != nil {
		return nil, err
	}
	if _, ok := s.IsBool(); ok {
		return s, nil
	}
	s.SchemaURI = js.Draft
	return s, nil
}

// withEnum adds const or enum for a restricted node. A single non-null literal
// becomes const; a list allowing nothing becomes the false schema.
func withEnum(s *js.Schema, e restrict.EnumeratedValues) *js.Schema {
	if !e.IsRestricted() {
		return s
	}
	values := e.Values()
	if len(values) == 0 {
		return js.Bool(false)
	}
	if len(values) == 1 && !entity.IsNull(values[0]) {
		s.Const = entity.ToAny(values[0])
		return s
	}
	s.Enum = make([]any, len(values))
	for i, v := range values {
		s.Enum[i] = entity.ToAny(v)
	}
	return s
}

func numberKeywords(s *js.Schema, r restrict.NumberRestrictions) {
	s.Minimum = r.Min
	s.Maximum = r.Max
	s.ExclusiveMinimum = r.ExclusiveMin
	s.ExclusiveMaximum = r.ExclusiveMax
	s.MultipleOf = r.MultipleOf
}
