package node

import (
	"math"
	"strconv"
	"strings"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// NullNode accepts null and the configured null spellings.
type NullNode struct {
	Enum restrict.EnumeratedValues
}

// Null returns an unrestricted NullNode.
func Null() NullNode { return NullNode{} }

func (NullNode) node() {}

func (n NullNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	o, ok := other.(NullNode)
	return ok && n.Enum.IsSuperset(o.Enum)
}

func (n NullNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	o, ok := other.(NullNode)
	if !ok {
		return nil, false
	}
	return NullNode{Enum: n.Enum.Combine(o.Enum)}, true
}

func (n NullNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		switch v.(type) {
		case nil, entity.Null:
			return nil, false, nil
		case entity.Entity, entity.List:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeNull)
		}
		if s.NullFormatter.IsMatch(entity.Primitive(v), path.String(), s.CaseSensitive) {
			return entity.Null{}, true, nil
		}
		return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeNull)
	})
}

func (n NullNode) JSONSchema() (*js.Schema, error) {
	return withEnum(&js.Schema{Type: "null"}, n.Enum), nil
}

func (n NullNode) Equal(other Node) bool {
	o, ok := other.(NullNode)
	return ok && n.Enum.Equal(o.Enum)
}

// BooleanNode accepts booleans and the configured true/false spellings.
type BooleanNode struct {
	Enum restrict.EnumeratedValues
}

// Boolean returns an unrestricted BooleanNode.
func Boolean() BooleanNode { return BooleanNode{} }

func (BooleanNode) node() {}

func (n BooleanNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	o, ok := other.(BooleanNode)
	return ok && n.Enum.IsSuperset(o.Enum)
}

func (n BooleanNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	o, ok := other.(BooleanNode)
	if !ok {
		return nil, false
	}
	return BooleanNode{Enum: n.Enum.Combine(o.Enum)}, true
}

func (n BooleanNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		switch v.(type) {
		case entity.Boolean:
			return nil, false, nil
		case nil, entity.Entity, entity.List:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeBoolean)
		}
		text, p := entity.Primitive(v), path.String()
		if s.TruthFormatter.IsMatch(text, p, s.CaseSensitive) {
			return entity.Boolean(true), true, nil
		}
		if s.FalseFormatter.IsMatch(text, p, s.CaseSensitive) {
			return entity.Boolean(false), true, nil
		}
		return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeBoolean)
	})
}

func (n BooleanNode) JSONSchema() (*js.Schema, error) {
	return withEnum(&js.Schema{Type: "boolean"}, n.Enum), nil
}

func (n BooleanNode) Equal(other Node) bool {
	o, ok := other.(BooleanNode)
	return ok && n.Enum.Equal(o.Enum)
}

// IntegerNode accepts integers, doubles within the rounding precision of an
// integer and text parsing as either.
type IntegerNode struct {
	Enum         restrict.EnumeratedValues
	Restrictions restrict.NumberRestrictions
}

// Integer returns an unrestricted IntegerNode.
func Integer() IntegerNode { return IntegerNode{} }

// WithRestrictions returns a copy of n bounded by r.
func (n IntegerNode) WithRestrictions(r restrict.NumberRestrictions) IntegerNode {
	n.Restrictions = r
	return n
}

// WithEnum returns a copy of n restricted to e.
func (n IntegerNode) WithEnum(e restrict.EnumeratedValues) IntegerNode {
	n.Enum = e
	return n
}

func (IntegerNode) node() {}

func (n IntegerNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	o, ok := other.(IntegerNode)
	return ok && n.Enum.IsSuperset(o.Enum) && n.Restrictions.IsSuperset(o.Restrictions)
}

func (n IntegerNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	switch o := other.(type) {
	case IntegerNode:
		return IntegerNode{Enum: n.Enum.Combine(o.Enum), Restrictions: n.Restrictions.Combine(o.Restrictions)}, true
	case NumberNode:
		return o.TryCombine(n)
	}
	return nil, false
}

// int64 bounds as float64; 2^63 itself is out of range.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

func (n IntegerNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		fromDouble := func(f float64) (entity.Value, bool, error) {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeInteger)
			}
			r := math.Round(f)
			if math.Abs(f-r) > s.RoundingPrecision {
				return nil, false, entschema.Fail(path, root, entschema.CodeTooFarFromInteger)
			}
			if r < minInt64Float || r >= maxInt64Float {
				return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeInteger)
			}
			if err := n.Restrictions.Test(r, path, root); err != nil {
				return nil, false, err
			}
			return entity.Integer(int64(r)), true, nil
		}
		switch t := v.(type) {
		case entity.Integer:
			return nil, false, n.Restrictions.Test(float64(t), path, root)
		case entity.Double:
			return fromDouble(float64(t))
		case nil, entity.Null, entity.Entity, entity.List:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeInteger)
		}
		text := strings.TrimSpace(entity.Primitive(v))
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			if err := n.Restrictions.Test(float64(i), path, root); err != nil {
				return nil, false, err
			}
			return entity.Integer(i), true, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return fromDouble(f)
		}
		return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeInteger)
	})
}

func (n IntegerNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "integer"}
	numberKeywords(s, n.Restrictions)
	return withEnum(s, n.Enum), nil
}

func (n IntegerNode) Equal(other Node) bool {
	o, ok := other.(IntegerNode)
	return ok && n.Enum.Equal(o.Enum) && n.Restrictions.Equal(o.Restrictions)
}

// NumberNode accepts integers, doubles and text parsing as a finite double.
type NumberNode struct {
	Enum         restrict.EnumeratedValues
	Restrictions restrict.NumberRestrictions
}

// Number returns an unrestricted NumberNode.
func Number() NumberNode { return NumberNode{} }

// WithRestrictions returns a copy of n bounded by r.
func (n NumberNode) WithRestrictions(r restrict.NumberRestrictions) NumberNode {
	n.Restrictions = r
	return n
}

// WithEnum returns a copy of n restricted to e.
func (n NumberNode) WithEnum(e restrict.EnumeratedValues) NumberNode {
	n.Enum = e
	return n
}

func (NumberNode) node() {}

// IsSuperset also holds over an IntegerNode whose restrictions are within the
// receiver's, since every integer is a number.
func (n NumberNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	switch o := other.(type) {
	case NumberNode:
		return n.Enum.IsSuperset(o.Enum) && n.Restrictions.IsSuperset(o.Restrictions)
	case IntegerNode:
		return n.Enum.IsSuperset(o.Enum) && n.Restrictions.IsSuperset(o.Restrictions)
	}
	return false
}

func (n NumberNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	switch o := other.(type) {
	case NumberNode:
		return NumberNode{Enum: n.Enum.Combine(o.Enum), Restrictions: n.Restrictions.Combine(o.Restrictions)}, true
	case IntegerNode:
		return NumberNode{Enum: n.Enum.Combine(o.Enum), Restrictions: n.Restrictions.Combine(o.Restrictions)}, true
	}
	return nil, false
}

func (n NumberNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		switch t := v.(type) {
		case entity.Integer:
			return nil, false, n.Restrictions.Test(float64(t), path, root)
		case entity.Double:
			f := float64(t)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeNumber)
			}
			return nil, false, n.Restrictions.Test(f, path, root)
		case nil, entity.Null, entity.Entity, entity.List:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeNumber)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(entity.Primitive(v)), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeNumber)
		}
		if err := n.Restrictions.Test(f, path, root); err != nil {
			return nil, false, err
		}
		return entity.Double(f), true, nil
	})
}

func (n NumberNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "number"}
	numberKeywords(s, n.Restrictions)
	return withEnum(s, n.Enum), nil
}

func (n NumberNode) Equal(other Node) bool {
	o, ok := other.(NumberNode)
	return ok && n.Enum.Equal(o.Enum) && n.Restrictions.Equal(o.Restrictions)
}
