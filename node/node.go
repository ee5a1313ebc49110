package node

import (
	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// Node describes the set of values acceptable at one position of an entity.
// The implementations are TrueNode, FalseNode, NullNode, BooleanNode,
// IntegerNode, NumberNode, StringNode, ArrayNode, ObjectNode and OneOfNode.
// Nodes are immutable values; operations return new nodes.
type Node interface {
	// IsSuperset reports whether every value accepted by other is accepted
	// by the receiver.
	IsSuperset(other Node) bool
	// TryCombine joins the receiver with other. It reports false when the
	// two variants cannot be joined without a union; use Combine to get one.
	TryCombine(other Node) (Node, bool)
	// TryTransform validates v and coerces it where possible. It returns
	// (nil, false, nil) when v already conforms, (v', true, nil) when v was
	// coerced into v', and entschema.Violations otherwise. A nil s means
	// format.DefaultSettings.
	TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error)
	// JSONSchema exports the node as a JSON Schema fragment.
	JSONSchema() (*js.Schema, error)
	// Equal reports structural equality.
	Equal(other Node) bool
	node()
}

// Combine returns the least restrictive node accepting every value a or b
// accepts. Variants that cannot be joined are wrapped in a OneOfNode. A nil
// node is treated as TrueNode.
func Combine(a, b Node) Node {
	a, b = orTrue(a), orTrue(b)
	if n, ok := a.TryCombine(b); ok {
		return n
	}
	if n, ok := b.TryCombine(a); ok {
		return n
	}
	return OneOfNode{Options: []Node{a, b}}
}

// IsSuperset is a nil-safe form of a.IsSuperset(b).
func IsSuperset(a, b Node) bool { return orTrue(a).IsSuperset(orTrue(b)) }

// Equal is a nil-safe form of a.Equal(b); nil equals TrueNode.
func Equal(a, b Node) bool { return orTrue(a).Equal(orTrue(b)) }

func orTrue(n Node) Node {
	if n == nil {
		return TrueNode{}
	}
	return n
}

// enumOf returns the enumerated values n restricts itself to. FalseNode
// allows nothing.
func enumOf(n Node) restrict.EnumeratedValues {
	switch t := n.(type) {
	case FalseNode:
		return restrict.Allow()
	case NullNode:
		return t.Enum
	case BooleanNode:
		return t.Enum
	case IntegerNode:
		return t.Enum
	case NumberNode:
		return t.Enum
	case StringNode:
		return t.Enum
	case ArrayNode:
		return t.Enum
	case ObjectNode:
		return t.Enum
	case OneOfNode:
		return t.Enum
	}
	return restrict.Unrestricted()
}

// supersetOfSpecial decides IsSuperset for the operands every variant treats
// alike: FalseNode is below everything and a union is dominated when each of
// its options is.
func supersetOfSpecial(n, other Node) (result, decided bool) {
	switch o := other.(type) {
	case FalseNode:
		return true, true
	case OneOfNode:
		if _, self := n.(OneOfNode); self {
			return false, false
		}
		for _, opt := range o.Options {
			if !n.IsSuperset(orTrue(opt)) {
				return false, true
			}
		}
		return true, true
	}
	return false, false
}

// combineWithSpecial handles the lattice identities: TrueNode absorbs and
// FalseNode is neutral.
func combineWithSpecial(n, other Node) (Node, bool) {
	switch other.(type) {
	case TrueNode:
		return TrueNode{}, true
	case FalseNode:
		return n, true
	}
	return nil, false
}

// transformEnum runs the enumerated values check ahead of the variant
// specific transform fn. A canonical literal differing from v counts as a
// coercion even when fn leaves it unchanged.
func transformEnum(e restrict.EnumeratedValues, path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot,
	fn func(v entity.Value) (entity.Value, bool, error)) (entity.Value, bool, error) {
	canon, changed, err := e.TryTransform(path, v, s.CaseSensitive, root)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		canon = v
	}
	out, coerced, err := fn(canon)
	if err != nil {
		return nil, false, err
	}
	if coerced {
		return out, true, nil
	}
	if changed {
		return canon, true, nil
	}
	return nil, false, nil
}

// TrueNode accepts every value. It is the top of the lattice.
type TrueNode struct{}

// FalseNode accepts nothing. It is the bottom of the lattice and the neutral
// element of Combine.
type FalseNode struct{}

// True returns the node accepting every value.
func True() TrueNode { return TrueNode{} }

// False returns the node accepting no value.
func False() FalseNode { return FalseNode{} }

func (TrueNode) node()  {}
func (FalseNode) node() {}

func (TrueNode) IsSuperset(Node) bool { return true }

func (TrueNode) TryCombine(Node) (Node, bool) { return TrueNode{}, true }

func (TrueNode) TryTransform(entschema.Path, entity.Value, *format.TransformSettings, entschema.TransformRoot) (entity.Value, bool, error) {
	return nil, false, nil
}

func (TrueNode) JSONSchema() (*js.Schema, error) { return js.Bool(true), nil }

func (TrueNode) Equal(other Node) bool {
	_, ok := other.(TrueNode)
	return ok
}

func (n FalseNode) IsSuperset(other Node) bool {
	r, _ := supersetOfSpecial(n, other)
	return r
}

func (FalseNode) TryCombine(other Node) (Node, bool) { return orTrue(other), true }

func (FalseNode) TryTransform(path entschema.Path, _ entity.Value, _ *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	return nil, false, entschema.Fail(path, root, entschema.CodeAlwaysFalse)
}

func (FalseNode) JSONSchema() (*js.Schema, error) { return js.Bool(false), nil }

func (FalseNode) Equal(other Node) bool {
	_, ok := other.(FalseNode)
	return ok
}
