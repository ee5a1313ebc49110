package restrict

import (
	"strings"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
)

// EnumeratedValues restricts a node to a closed list of literal values. The
// zero value is unrestricted.
type EnumeratedValues struct {
	values     []entity.Value
	restricted bool
}

// Unrestricted returns the restriction that allows every value.
func Unrestricted() EnumeratedValues { return EnumeratedValues{} }

// Allow returns a restriction to the given literals. Duplicates are dropped
// keeping the first occurrence. Allow() with no values allows nothing, which
// is reported as a configuration violation when a value is tested.
func Allow(values ...entity.Value) EnumeratedValues {
	return EnumeratedValues{values: appendUnique(nil, values...), restricted: true}
}

// AllowStrings is Allow for String literals.
func AllowStrings(values ...string) EnumeratedValues {
	vs := make([]entity.Value, len(values))
	for i, s := range values {
		vs[i] = entity.String(s)
	}
	return Allow(vs...)
}

func appendUnique(dst []entity.Value, more ...entity.Value) []entity.Value {
	for _, v := range more {
		if v == nil {
			v = entity.Null{}
		}
		if indexOfValue(dst, v) < 0 {
			dst = append(dst, v)
		}
	}
	return dst
}

func indexOfValue(vs []entity.Value, v entity.Value) int {
	for i := range vs {
		if entity.Equal(vs[i], v) {
			return i
		}
	}
	return -1
}

// IsRestricted reports whether a literal list applies.
func (e EnumeratedValues) IsRestricted() bool { return e.restricted }

// Values returns a copy of the allowed literals (nil when unrestricted).
func (e EnumeratedValues) Values() []entity.Value {
	if !e.restricted {
		return nil
	}
	return append([]entity.Value{}, e.values...)
}

// Equal reports whether both restrictions allow the same literals. Order is
// not compared.
func (e EnumeratedValues) Equal(o EnumeratedValues) bool {
	if e.restricted != o.restricted || len(e.values) != len(o.values) {
		return false
	}
	return e.IsSuperset(o) && o.IsSuperset(e)
}

// IsSuperset reports whether every literal o allows is allowed by e.
func (e EnumeratedValues) IsSuperset(o EnumeratedValues) bool {
	if !e.restricted {
		return true
	}
	if !o.restricted {
		return false
	}
	for _, v := range o.values {
		if indexOfValue(e.values, v) < 0 {
			return false
		}
	}
	return true
}

// Combine returns the restriction allowing the literals of both. An
// unrestricted side absorbs the other.
func (e EnumeratedValues) Combine(o EnumeratedValues) EnumeratedValues {
	if !e.restricted || !o.restricted {
		return Unrestricted()
	}
	vs := appendUnique(append([]entity.Value{}, e.values...), o.values...)
	return EnumeratedValues{values: vs, restricted: true}
}

// Match returns the allowed literal corresponding to v: an equal literal
// first, otherwise one whose primitive string equals v's (case-insensitively
// unless caseSensitive).
func (e EnumeratedValues) Match(v entity.Value, caseSensitive bool) (entity.Value, bool) {
	if i := indexOfValue(e.values, v); i >= 0 {
		return e.values[i], true
	}
	text := entity.Primitive(v)
	for _, allowed := range e.values {
		p := entity.Primitive(allowed)
		if p == text || (!caseSensitive && strings.EqualFold(p, text)) {
			return allowed, true
		}
	}
	return nil, false
}

// TryTransform maps v onto its canonical allowed literal. It reports changed
// when the literal differs from v.
func (e EnumeratedValues) TryTransform(path entschema.Path, v entity.Value, caseSensitive bool, root entschema.TransformRoot) (entity.Value, bool, error) {
	if !e.restricted {
		return nil, false, nil
	}
	if len(e.values) == 0 {
		return nil, false, entschema.Fail(path, root, entschema.CodeNoAllowedValues)
	}
	allowed, ok := e.Match(v, caseSensitive)
	if !ok {
		return nil, false, entschema.Fail(path, root, entschema.CodeInvalidEnum, "values", e.String())
	}
	if entity.Equal(allowed, v) {
		return nil, false, nil
	}
	return allowed, true, nil
}

// Test checks that v is one of the allowed literals.
func (e EnumeratedValues) Test(v entity.Value, path entschema.Path, root entschema.TransformRoot) error {
	_, _, err := e.TryTransform(path, v, true, root)
	return err
}

// String lists the allowed literals, or "*" when unrestricted.
func (e EnumeratedValues) String() string {
	if !e.restricted {
		return "*"
	}
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = entity.Primitive(v)
	}
	return strings.Join(parts, ", ")
}
