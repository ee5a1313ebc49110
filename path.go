package entschema

import (
	"strconv"
	"strings"
)

// Path addresses a value inside an entity: property names joined by '.' and
// list positions rendered as [i], for example "orders[2].price". The zero Path
// is the top-level entity. Paths are immutable; Field and Index return new
// paths.
type Path struct {
	parts []string
}

// Root returns the empty path.
func Root() Path { return Path{} }

// ParsePath splits a rendered path back into a Path.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	var parts []string
	for _, seg := range strings.Split(s, ".") {
		name, rest, _ := strings.Cut(seg, "[")
		if name != "" {
			parts = append(parts, name)
		}
		for rest != "" {
			idx, tail, _ := strings.Cut(rest, "]")
			parts = append(parts, "["+idx+"]")
			_, rest, _ = strings.Cut(tail, "[")
		}
	}
	return Path{parts: parts}
}

// Field returns the path of property name below p.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	return Path{parts: append(append(make([]string, 0, len(p.parts)+1), p.parts...), name)}
}

// Index returns the path of list position i below p.
func (p Path) Index(i int) Path {
	return Path{parts: append(append(make([]string, 0, len(p.parts)+1), p.parts...), "["+strconv.Itoa(i)+"]")}
}

// IsRoot reports whether p addresses the top-level entity.
func (p Path) IsRoot() bool { return len(p.parts) == 0 }

// Leaf returns the last property name in p, skipping list positions.
func (p Path) Leaf() string {
	for i := len(p.parts) - 1; i >= 0; i-- {
		if !strings.HasPrefix(p.parts[i], "[") {
			return p.parts[i]
		}
	}
	return ""
}

// String renders the path.
func (p Path) String() string {
	b := &strings.Builder{}
	for i, part := range p.parts {
		if i > 0 && !strings.HasPrefix(part, "[") {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
