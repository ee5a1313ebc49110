package node

import (
	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// OneOfNode accepts a value accepted by any of its options. Options are tried
// in order and the first success wins.
type OneOfNode struct {
	Enum    restrict.EnumeratedValues
	Options []Node
}

// OneOf returns a union of the given options.
func OneOf(options ...Node) OneOfNode { return OneOfNode{Options: options} }

func (OneOfNode) node() {}

func (n OneOfNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	if !n.Enum.IsSuperset(enumOf(other)) {
		return false
	}
	if o, ok := other.(OneOfNode); ok {
		for _, opt := range o.Options {
			if !n.dominates(orTrue(opt)) {
				return false
			}
		}
		return true
	}
	return n.dominates(other)
}

func (n OneOfNode) dominates(other Node) bool {
	if _, ok := other.(FalseNode); ok {
		return true
	}
	for _, opt := range n.Options {
		if orTrue(opt).IsSuperset(other) {
			return true
		}
	}
	return false
}

// TryCombine always succeeds: the result keeps the receiver's options in
// order, appends the incoming options and drops duplicates.
func (n OneOfNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	incoming := []Node{other}
	if o, ok := other.(OneOfNode); ok {
		incoming = o.Options
	}
	options := append([]Node(nil), n.Options...)
	for _, in := range incoming {
		options = append(options, orTrue(in))
	}
	return OneOfNode{Enum: n.Enum.Combine(enumOf(other)), Options: dedupe(options)}, true
}

func dedupe(options []Node) []Node {
	out := options[:0:0]
	for _, opt := range options {
		dup := false
		for _, seen := range out {
			if Equal(seen, opt) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, opt)
		}
	}
	return out
}

func (n OneOfNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		for _, opt := range n.Options {
			if out, changed, err := orTrue(opt).TryTransform(path, v, s, root); err == nil {
				return out, changed, nil
			}
		}
		return nil, false, entschema.Fail(path, root, entschema.CodeNoMatchingOption)
	})
}

func (n OneOfNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{}
	for _, opt := range n.Options {
		sub, err := orTrue(opt).JSONSchema()
		if err != nil {
			return nil, err
		}
		s.AnyOf = append(s.AnyOf, sub)
	}
	if len(s.AnyOf) == 0 {
		return js.Bool(false), nil
	}
	return withEnum(s, n.Enum), nil
}

// Equal compares options regardless of order.
func (n OneOfNode) Equal(other Node) bool {
	o, ok := other.(OneOfNode)
	if !ok || len(n.Options) != len(o.Options) || !n.Enum.Equal(o.Enum) {
		return false
	}
	for _, opt := range n.Options {
		found := false
		for _, oo := range o.Options {
			if Equal(opt, oo) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
