package node

import (
	"math"
	"strconv"
	"strings"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/codec"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	"github.com/reoring/entschema/restrict"
)

// GetNode guesses the narrowest node describing v. Text is probed, in order,
// as a configured null spelling, a true/false spelling, an integer, a finite
// number and a date-time before falling back to String. Nested entities
// become closed objects whose present properties are all required.
func GetNode(v entity.Value, path entschema.Path, s *format.TransformSettings) Node {
	s = s.OrDefault()
	switch t := v.(type) {
	case nil, entity.Null:
		return NullNode{}
	case entity.Boolean:
		return BooleanNode{}
	case entity.Integer:
		return IntegerNode{}
	case entity.Double:
		return NumberNode{}
	case entity.DateTime:
		return DateTime()
	case entity.Enumeration:
		return StringNode{Enum: restrict.Allow(t)}
	case entity.List:
		var items Node = FalseNode{}
		for i, el := range t {
			items = Combine(items, GetNode(el, path.Index(i), s))
		}
		return Array(items)
	case entity.Entity:
		props := make([]PropertyNode, 0, t.Len())
		for name, pv := range t.All() {
			props = append(props, PropertyNode{Name: name, Node: GetNode(pv, path.Field(name), s), Required: true})
		}
		// entity keys are unique, so this cannot fail
		pd, _ := NewProperties(props...)
		return ObjectNode{Properties: pd, AdditionalItems: FalseNode{}}
	case entity.String:
		return guessText(string(t), path, s)
	}
	return StringNode{}
}

func guessText(text string, path entschema.Path, s *format.TransformSettings) Node {
	p := path.String()
	switch {
	case s.NullFormatter.IsMatch(text, p, s.CaseSensitive):
		return NullNode{}
	case s.TruthFormatter.IsMatch(text, p, s.CaseSensitive), s.FalseFormatter.IsMatch(text, p, s.CaseSensitive):
		return BooleanNode{}
	}
	trimmed := strings.TrimSpace(text)
	if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return IntegerNode{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return NumberNode{}
	}
	if _, err := codec.Parse(text, s.DateFormatter.Formats(p)); err == nil {
		return DateTime()
	}
	return StringNode{}
}

// InferSchema combines the nodes of every entity into one schema. No entities
// yields FalseNode.
func InferSchema(entities []entity.Entity, s *format.TransformSettings) Node {
	var schema Node = FalseNode{}
	for _, e := range entities {
		schema = Combine(schema, GetNode(e, entschema.Root(), s))
	}
	return schema
}
