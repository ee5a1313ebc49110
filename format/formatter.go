package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/entschema/entity"
)

// Wildcard is the dictionary key consulted when no path-specific entry exists.
const Wildcard = "*"

// Formatter lists the textual spellings accepted for some concept (a date
// layout, a truthy word, a delimiter). It is either a flat list applying to
// every property or a dictionary keyed by property path. Formatters are
// read-only once built.
type Formatter struct {
	flat    []string
	byPath  map[string][]string
	perPath bool
}

// NewFormatter returns a flat formatter.
func NewFormatter(formats ...string) Formatter {
	return Formatter{flat: append([]string(nil), formats...)}
}

// NewPathFormatter returns a dictionary formatter. Keys are property paths
// (compared case-insensitively, list indices ignored) or Wildcard.
func NewPathFormatter(m map[string][]string) Formatter {
	byPath := make(map[string][]string, len(m))
	for k, v := range m {
		key := normalizeKey(k)
		byPath[key] = append(byPath[key], v...)
	}
	return Formatter{byPath: byPath, perPath: true}
}

// FormatterFromValue builds a formatter from an entity value: a String is a
// single format, a List is a flat list of formats and an Entity maps property
// paths to a String or List of formats. Null yields an empty formatter.
func FormatterFromValue(v entity.Value) (Formatter, error) {
	switch t := v.(type) {
	case nil, entity.Null:
		return Formatter{}, nil
	case entity.String:
		return NewFormatter(string(t)), nil
	case entity.List:
		return NewFormatter(primitives(t)...), nil
	case entity.Entity:
		m := make(map[string][]string, t.Len())
		for name, pv := range t.All() {
			switch pt := pv.(type) {
			case entity.String:
				m[name] = []string{string(pt)}
			case entity.List:
				m[name] = primitives(pt)
			default:
				return Formatter{}, fmt.Errorf("format: property %q must be a string or a list of strings, got %s", name, pv.Kind())
			}
		}
		return NewPathFormatter(m), nil
	}
	return Formatter{}, fmt.Errorf("format: cannot build a formatter from %s", v.Kind())
}

func primitives(l entity.List) []string {
	out := make([]string, len(l))
	for i := range l {
		out[i] = entity.Primitive(l[i])
	}
	return out
}

// IsPerPath reports whether f is a dictionary formatter.
func (f Formatter) IsPerPath() bool { return f.perPath }

// IsEmpty reports whether f holds no formats at all.
func (f Formatter) IsEmpty() bool { return len(f.flat) == 0 && len(f.byPath) == 0 }

// Formats returns the formats that apply at path. Dictionary lookups try the
// exact path, the path without list indices, the leaf property name and
// finally Wildcard.
func (f Formatter) Formats(path string) []string {
	if !f.perPath {
		return f.flat
	}
	for _, key := range lookupKeys(path) {
		if v, ok := f.byPath[key]; ok {
			return v
		}
	}
	return nil
}

// IsMatch reports whether value equals one of the formats for path.
func (f Formatter) IsMatch(value, path string, caseSensitive bool) bool {
	for _, s := range f.Formats(path) {
		if caseSensitive {
			if s == value {
				return true
			}
			continue
		}
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

// String renders the formatter for diagnostics.
func (f Formatter) String() string {
	if !f.perPath {
		return "[" + strings.Join(f.flat, ", ") + "]"
	}
	keys := make([]string, 0, len(f.byPath))
	for k := range f.byPath {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": [" + strings.Join(f.byPath[k], ", ") + "]"
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

var indexPattern = regexp.MustCompile(`\[\d*\]`)

func normalizeKey(k string) string { return strings.ToLower(strings.TrimSpace(k)) }

func lookupKeys(path string) []string {
	exact := normalizeKey(path)
	stripped := indexPattern.ReplaceAllString(exact, "")
	leaf := stripped
	if i := strings.LastIndexByte(leaf, '.'); i >= 0 {
		leaf = leaf[i+1:]
	}
	keys := []string{exact}
	if stripped != exact {
		keys = append(keys, stripped)
	}
	if leaf != stripped {
		keys = append(keys, leaf)
	}
	return append(keys, Wildcard)
}

// UnmarshalYAML accepts a scalar (one format), a sequence (flat list) or a
// mapping of property path to scalar or sequence (dictionary).
func (f *Formatter) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*f = NewFormatter(n.Value)
		return nil
	case yaml.SequenceNode:
		formats, err := scalars(n)
		if err != nil {
			return err
		}
		*f = NewFormatter(formats...)
		return nil
	case yaml.MappingNode:
		m := make(map[string][]string, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			switch v.Kind {
			case yaml.ScalarNode:
				m[k.Value] = []string{v.Value}
			case yaml.SequenceNode:
				formats, err := scalars(v)
				if err != nil {
					return err
				}
				m[k.Value] = formats
			default:
				return fmt.Errorf("format: line %d: formats for %q must be a string or a list", v.Line, k.Value)
			}
		}
		*f = NewPathFormatter(m)
		return nil
	}
	return fmt.Errorf("format: line %d: unsupported formatter shape", n.Line)
}

func scalars(n *yaml.Node) ([]string, error) {
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("format: line %d: expected a string", c.Line)
		}
		out = append(out, c.Value)
	}
	return out, nil
}
