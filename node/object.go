package node

import (
	"fmt"
	"strings"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// PropertyNode is a declared property of an object schema.
type PropertyNode struct {
	Name     string
	Node     Node
	Required bool
	// Order is the position of the property in the declaration.
	Order int
}

// EntityPropertiesData is the ordered set of declared properties of an
// object schema. Names compare case-insensitively.
type EntityPropertiesData struct {
	props []PropertyNode
}

// NewProperties validates and orders props. Duplicate names are an error.
func NewProperties(props ...PropertyNode) (EntityPropertiesData, error) {
	out := make([]PropertyNode, 0, len(props))
	for _, p := range props {
		if p.Name == "" {
			return EntityPropertiesData{}, fmt.Errorf("node: empty property name")
		}
		if indexOfProperty(out, p.Name) >= 0 {
			return EntityPropertiesData{}, fmt.Errorf("node: duplicate property %q", p.Name)
		}
		p.Order = len(out)
		p.Node = orTrue(p.Node)
		out = append(out, p)
	}
	return EntityPropertiesData{props: out}, nil
}

func indexOfProperty(props []PropertyNode, name string) int {
	for i := range props {
		if strings.EqualFold(props[i].Name, name) {
			return i
		}
	}
	return -1
}

// Len returns the number of declared properties.
func (d EntityPropertiesData) Len() int { return len(d.props) }

// Get looks up a property case-insensitively.
func (d EntityPropertiesData) Get(name string) (PropertyNode, bool) {
	if i := indexOfProperty(d.props, name); i >= 0 {
		return d.props[i], true
	}
	return PropertyNode{}, false
}

// All returns the properties in declaration order.
func (d EntityPropertiesData) All() []PropertyNode {
	return append([]PropertyNode(nil), d.props...)
}

// Combine unions the property names in first-seen order. A property on both
// sides joins the two nodes and stays required only when required on both;
// a property on one side becomes optional.
func (d EntityPropertiesData) Combine(o EntityPropertiesData) EntityPropertiesData {
	out := make([]PropertyNode, 0, len(d.props)+len(o.props))
	for _, p := range d.props {
		if op, ok := o.Get(p.Name); ok {
			p.Node = Combine(p.Node, op.Node)
			p.Required = p.Required && op.Required
		} else {
			p.Required = false
		}
		p.Order = len(out)
		out = append(out, p)
	}
	for _, p := range o.props {
		if indexOfProperty(d.props, p.Name) >= 0 {
			continue
		}
		p.Required = false
		p.Order = len(out)
		out = append(out, p)
	}
	return EntityPropertiesData{props: out}
}

// Equal compares names, nodes and required flags; declaration order is not
// compared.
func (d EntityPropertiesData) Equal(o EntityPropertiesData) bool {
	if len(d.props) != len(o.props) {
		return false
	}
	for _, p := range d.props {
		op, ok := o.Get(p.Name)
		if !ok || p.Required != op.Required || !Equal(p.Node, op.Node) {
			return false
		}
	}
	return true
}

// ObjectNode accepts nested entities. Declared properties are transformed by
// their own node; every other property must satisfy AdditionalItems (nil
// accepts anything).
type ObjectNode struct {
	Enum            restrict.EnumeratedValues
	Properties      EntityPropertiesData
	AdditionalItems Node
}

// WithEnum returns a copy of n restricted to e.
func (n ObjectNode) WithEnum(e restrict.EnumeratedValues) ObjectNode {
	n.Enum = e
	return n
}

func (ObjectNode) node() {}

// IsSuperset holds only for a structurally equal object; no structural
// subtyping between objects is attempted.
func (n ObjectNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	return n.Equal(other)
}

func (n ObjectNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	o, ok := other.(ObjectNode)
	if !ok {
		return nil, false
	}
	return ObjectNode{
		Enum:            n.Enum.Combine(o.Enum),
		Properties:      n.Properties.Combine(o.Properties),
		AdditionalItems: Combine(n.AdditionalItems, o.AdditionalItems),
	}, true
}

func (n ObjectNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		e, ok := v.(entity.Entity)
		if !ok {
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeEntity)
		}
		return n.transformEntity(path, e, s, root)
	})
}

func (n ObjectNode) transformEntity(path entschema.Path, e entity.Entity, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	var vs entschema.Violations
	out, changed := e, false
	seen := make(map[string]bool, n.Properties.Len())
	additional := orTrue(n.AdditionalItems)

	for name, val := range e.All() {
		child := path.Field(name)
		if p, declared := n.Properties.Get(name); declared {
			seen[strings.ToLower(p.Name)] = true
			nv, ch, err := p.Node.TryTransform(child, val, s, root)
			switch {
			case err != nil:
				vs = entschema.Collect(vs, err, child, root)
			case ch:
				out, changed = out.With(name, nv), true
			}
			continue
		}

		nv, ch, err := additional.TryTransform(child, val, s, root)
		switch {
		case err == nil && ch:
			out, changed = out.With(name, nv), true
		case err == nil:
		case s.ShouldRemoveExtra():
			out, changed = out.Without(name), true
		default:
			vs = entschema.AppendViolations(vs, entschema.NewViolation(child, root, entschema.CodeUnexpectedProperty, "name", name))
			if _, closed := additional.(FalseNode); !closed {
				vs = entschema.Collect(vs, err, child, root)
			}
		}
	}

	for _, p := range n.Properties.props {
		if p.Required && !seen[strings.ToLower(p.Name)] {
			vs = entschema.AppendViolations(vs, entschema.NewViolation(path.Field(p.Name), root, entschema.CodeMissingProperty, "name", p.Name))
		}
	}

	if len(vs) > 0 {
		return nil, false, vs
	}
	if !changed {
		return nil, false, nil
	}
	return out, true, nil
}

func (n ObjectNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object"}
	for _, p := range n.Properties.props {
		ps, err := p.Node.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		if s.Properties == nil {
			s.Properties = make(map[string]*js.Schema, n.Properties.Len())
		}
		s.Properties[p.Name] = ps
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	if _, open := orTrue(n.AdditionalItems).(TrueNode); !open {
		as, err := n.AdditionalItems.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = as
	}
	return withEnum(s, n.Enum), nil
}

func (n ObjectNode) Equal(other Node) bool {
	o, ok := other.(ObjectNode)
	return ok && n.Enum.Equal(o.Enum) && n.Properties.Equal(o.Properties) && Equal(n.AdditionalItems, o.AdditionalItems)
}

// ObjectBuilder assembles an ObjectNode. Unlisted properties are rejected
// unless Additional is called.
type ObjectBuilder struct {
	props      []PropertyNode
	additional Node
	enum       restrict.EnumeratedValues
}

type fieldStep struct {
	b *ObjectBuilder
	i int
}

// Object starts an object schema that rejects unlisted properties.
func Object() *ObjectBuilder {
	return &ObjectBuilder{additional: FalseNode{}}
}

// Field declares an optional property.
func (b *ObjectBuilder) Field(name string, n Node) *fieldStep {
	b.props = append(b.props, PropertyNode{Name: name, Node: n})
	return &fieldStep{b: b, i: len(b.props) - 1}
}

// Additional sets the node unlisted properties must satisfy. True() keeps
// them as they are.
func (b *ObjectBuilder) Additional(n Node) *ObjectBuilder {
	b.additional = n
	return b
}

// Enum restricts the whole entity to the given literals.
func (b *ObjectBuilder) Enum(e restrict.EnumeratedValues) *ObjectBuilder {
	b.enum = e
	return b
}

// Build validates the declaration.
func (b *ObjectBuilder) Build() (ObjectNode, error) {
	props, err := NewProperties(b.props...)
	if err != nil {
		return ObjectNode{}, err
	}
	return ObjectNode{Enum: b.enum, Properties: props, AdditionalItems: b.additional}, nil
}

// MustBuild is Build that panics on an invalid declaration.
func (b *ObjectBuilder) MustBuild() ObjectNode {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *ObjectBuilder {
	f.b.props[f.i].Required = true
	return f.b
}

// Optional keeps the field optional (default) and returns the builder.
func (f *fieldStep) Optional() *ObjectBuilder {
	f.b.props[f.i].Required = false
	return f.b
}

func (f *fieldStep) Field(name string, n Node) *fieldStep { return f.b.Field(name, n) }
func (f *fieldStep) Additional(n Node) *ObjectBuilder     { return f.b.Additional(n) }
func (f *fieldStep) Build() (ObjectNode, error)           { return f.b.Build() }
func (f *fieldStep) MustBuild() ObjectNode                { return f.b.MustBuild() }
