package source

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/entschema/entity"
)

// ReadYAML reads entities from a YAML stream. Each document is either a
// mapping (one entity) or a sequence of mappings. Key order is preserved.
func ReadYAML(r io.Reader) ([]entity.Entity, error) {
	dec := yaml.NewDecoder(r)
	var out []entity.Entity
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("source: decode yaml: %w", err)
		}
		root := &doc
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}
		v, err := yamlValue(root)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case entity.Entity:
			out = append(out, t)
		case entity.List:
			for i, el := range t {
				e, ok := el.(entity.Entity)
				if !ok {
					return nil, fmt.Errorf("%w: line %d: element %d is %s", ErrNotEntity, root.Line, i, el.Kind())
				}
				out = append(out, e)
			}
		case entity.Null:
		default:
			return nil, fmt.Errorf("%w: line %d: got %s", ErrNotEntity, root.Line, v.Kind())
		}
	}
}

func yamlValue(n *yaml.Node) (entity.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		props := make([]entity.Property, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			v, err := yamlValue(vn)
			if err != nil {
				return nil, err
			}
			props = append(props, entity.Property{Name: k.Value, Value: v})
		}
		e, err := entity.New(props...)
		if err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return e, nil
	case yaml.SequenceNode:
		l := make(entity.List, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("source: line %d: unsupported yaml node", n.Line)
}

func yamlScalar(n *yaml.Node) (entity.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return entity.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return entity.Boolean(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return entity.Integer(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return entity.Double(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return entity.DateTime(t), nil
	}
	return entity.String(n.Value), nil
}
