package node

import (
	"strings"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/restrict"
)

// ItemsData is the shape of a list: a positional prefix followed by a
// homogeneous tail. A nil AdditionalItems accepts anything.
type ItemsData struct {
	PrefixItems     []Node
	AdditionalItems Node
}

// At returns the node for list position i.
func (d ItemsData) At(i int) Node {
	if i < len(d.PrefixItems) {
		return orTrue(d.PrefixItems[i])
	}
	return orTrue(d.AdditionalItems)
}

// IsSuperset compares the tails and every position of the longer prefix.
func (d ItemsData) IsSuperset(o ItemsData) bool {
	if !IsSuperset(d.AdditionalItems, o.AdditionalItems) {
		return false
	}
	for i := range max(len(d.PrefixItems), len(o.PrefixItems)) {
		if !d.At(i).IsSuperset(o.At(i)) {
			return false
		}
	}
	return true
}

// Combine joins the tails and the prefixes position by position, padding the
// shorter prefix with its own tail.
func (d ItemsData) Combine(o ItemsData) ItemsData {
	out := ItemsData{AdditionalItems: Combine(d.AdditionalItems, o.AdditionalItems)}
	if n := max(len(d.PrefixItems), len(o.PrefixItems)); n > 0 {
		out.PrefixItems = make([]Node, n)
		for i := range n {
			out.PrefixItems[i] = Combine(d.At(i), o.At(i))
		}
	}
	return out
}

// Equal reports structural equality.
func (d ItemsData) Equal(o ItemsData) bool {
	if len(d.PrefixItems) != len(o.PrefixItems) || !Equal(d.AdditionalItems, o.AdditionalItems) {
		return false
	}
	for i := range d.PrefixItems {
		if !Equal(d.PrefixItems[i], o.PrefixItems[i]) {
			return false
		}
	}
	return true
}

// ArrayNode accepts lists, and scalar text split on the configured
// multi-value delimiters.
type ArrayNode struct {
	Enum  restrict.EnumeratedValues
	Items ItemsData
}

// Array returns an ArrayNode whose elements must satisfy items.
func Array(items Node) ArrayNode { return ArrayNode{Items: ItemsData{AdditionalItems: items}} }

// Tuple returns an ArrayNode with positional items followed by rest.
func Tuple(rest Node, prefix ...Node) ArrayNode {
	return ArrayNode{Items: ItemsData{PrefixItems: prefix, AdditionalItems: rest}}
}

// WithEnum returns a copy of n restricted to e.
func (n ArrayNode) WithEnum(e restrict.EnumeratedValues) ArrayNode {
	n.Enum = e
	return n
}

func (ArrayNode) node() {}

func (n ArrayNode) IsSuperset(other Node) bool {
	if r, ok := supersetOfSpecial(n, other); ok {
		return r
	}
	o, ok := other.(ArrayNode)
	return ok && n.Enum.IsSuperset(o.Enum) && n.Items.IsSuperset(o.Items)
}

func (n ArrayNode) TryCombine(other Node) (Node, bool) {
	if r, ok := combineWithSpecial(n, other); ok {
		return r, true
	}
	o, ok := other.(ArrayNode)
	if !ok {
		return nil, false
	}
	return ArrayNode{Enum: n.Enum.Combine(o.Enum), Items: n.Items.Combine(o.Items)}, true
}

func (n ArrayNode) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	s = s.OrDefault()
	return transformEnum(n.Enum, path, v, s, root, func(v entity.Value) (entity.Value, bool, error) {
		switch t := v.(type) {
		case entity.List:
			return n.transformList(path, t, false, s, root)
		case entity.Entity:
			return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeList)
		}
		parts := splitAny(entity.Primitive(v), s.MultiValueFormatter.Formats(path.String()))
		l := make(entity.List, len(parts))
		for i, p := range parts {
			l[i] = entity.String(p)
		}
		return n.transformList(path, l, true, s, root)
	})
}

// transformList transforms every element and aggregates all violations.
func (n ArrayNode) transformList(path entschema.Path, l entity.List, changed bool, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	var vs entschema.Violations
	out := l
	for i, el := range l {
		child := path.Index(i)
		nv, ch, err := n.Items.At(i).TryTransform(child, el, s, root)
		if err != nil {
			vs = entschema.Collect(vs, err, child, root)
			continue
		}
		if !ch {
			continue
		}
		if !changed {
			out = append(entity.List{}, l...)
			changed = true
		}
		out[i] = nv
	}
	if len(vs) > 0 {
		return nil, false, vs
	}
	if !changed {
		return nil, false, nil
	}
	return out, true, nil
}

// splitAny splits text at every occurrence of any delimiter. Empty text or no
// delimiters yields no elements. Parts are not trimmed; element nodes decide
// how to treat surrounding whitespace.
func splitAny(text string, delims []string) []string {
	if text == "" {
		return nil
	}
	var usable []string
	for _, d := range delims {
		if d != "" {
			usable = append(usable, d)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	var parts []string
	for {
		at, width := -1, 0
		for _, d := range usable {
			if i := strings.Index(text, d); i >= 0 && (at < 0 || i < at || (i == at && len(d) > width)) {
				at, width = i, len(d)
			}
		}
		if at < 0 {
			return append(parts, text)
		}
		parts = append(parts, text[:at])
		text = text[at+width:]
	}
}

func (n ArrayNode) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "array"}
	for _, p := range n.Items.PrefixItems {
		ps, err := orTrue(p).JSONSchema()
		if err != nil {
			return nil, err
		}
		s.PrefixItems = append(s.PrefixItems, ps)
	}
	if _, open := orTrue(n.Items.AdditionalItems).(TrueNode); !open {
		items, err := n.Items.AdditionalItems.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return withEnum(s, n.Enum), nil
}

func (n ArrayNode) Equal(other Node) bool {
	o, ok := other.(ArrayNode)
	return ok && n.Enum.Equal(o.Enum) && n.Items.Equal(o.Items)
}
