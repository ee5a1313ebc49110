package node

import (
	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// StringNode accepts textual values. Format refines the accepted strings (a
// nil Format accepts any string) and may convert them, as date-time does.
type StringNode struct {
	Enum         restrict.EnumeratedValues
	Format       restrict.StringFormat
	Restrictions restrict.StringRestrictions
}

// String returns an unrestricted StringNode.
func String() StringNode { return StringNode{} }

// DateTime returns a StringNode whose values are parsed into date-times.
func DateTime() StringNode { return StringNode{Format: restrict.DateTimeStringFormat{}} }

// WithRestrictions returns a copy of n bounded by r.
func (n StringNode) WithRestrictions(r restrict.StringRestrictions) StringNode {
	n.Restrictions = r
	return n
}

// WithEnum returns a copy of n restricted to e.
func (n StringNode) WithEnum(e restrict.EnumeratedValues) StringNode {
	n.Enum = e
	return n
}

func (StringNode) node() {}

func (n StringNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	o, ok := other.(StringNode)
	return ok && n.Enum.IsSuperset(o.Enum) &&
		restrict.FormatIsSuperset(n.Format, o.Format) &&
		n.Restrictions.IsSuperset(o.Restrictions)
}

func (n StringNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	o, ok := other.(StringNode)
	if !ok {
		return nil, false
	}
	return StringNode{
		Enum:         n.Enum.Combine(o.Enum),
		Format:       restrict.CombineFormats(n.Format, o.Format),
		Restrictions: n.Restrictions.Combine(o.Restrictions),
	}, true
}

func (n StringNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		switch v.(type) {
		case nil, entity.Null, entity.Entity, entity.List:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeString)
		}
		out, changed, err := restrict.FormatOf(n.Format).TryTransform(path, v, s, root)
		if err != nil {
			return nil, false, err
		}
		current := v
		if changed {
			current = out
		}
		if !n.Restrictions.IsEmpty() {
			if err := n.Restrictions.Test(entity.Primitive(current), path, root); err != nil {
				return nil, false, err
			}
		}
		return out, changed, nil
	})
}

func (n StringNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "string", Format: restrict.FormatOf(n.Format).Name()}
	if n.Restrictions.Pattern != nil {
		s.Pattern = n.Restrictions.Pattern.String()
	}
	s.MinLength = n.Restrictions.MinLength
	s.MaxLength = n.Restrictions.MaxLength
	return withEnum(s, n.Enum), nil
}

func (n StringNode) Equal(other Node) bool {
	o, ok := other.(StringNode)
	return ok && n.Enum.Equal(o.Enum) &&
		restrict.FormatOf(n.Format).Name() == restrict.FormatOf(o.Format).Name() &&
		n.Restrictions.Equal(o.Restrictions)
}
