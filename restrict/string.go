package restrict

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/reoring/entschema"
)

// StringRestrictions bounds the length of a string and optionally requires a
// regular expression to match somewhere in it. Lengths count runes.
type StringRestrictions struct {
	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp
}

// NoStringRestrictions accepts every string.
var NoStringRestrictions = StringRestrictions{}

// Length returns a pointer to n for use in restriction literals.
func Length(n int) *int { return &n }

// IsEmpty reports whether no restriction is set.
func (r StringRestrictions) IsEmpty() bool {
	return r.MinLength == nil && r.MaxLength == nil && r.Pattern == nil
}

// Equal compares lengths by value and patterns by source text.
func (r StringRestrictions) Equal(o StringRestrictions) bool {
	return eqInt(r.MinLength, o.MinLength) && eqInt(r.MaxLength, o.MaxLength) && samePattern(r.Pattern, o.Pattern)
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func samePattern(a, b *regexp.Regexp) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Test checks s and returns the first violation.
func (r StringRestrictions) Test(s string, path entschema.Path, root entschema.TransformRoot) error {
	n := utf8.RuneCountInString(s)
	if r.MinLength != nil && n < *r.MinLength {
		return entschema.Fail(path, root, entschema.CodeTooShort, "min", strconv.Itoa(*r.MinLength))
	}
	if r.MaxLength != nil && n > *r.MaxLength {
		return entschema.Fail(path, root, entschema.CodeTooLong, "max", strconv.Itoa(*r.MaxLength))
	}
	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		return entschema.Fail(path, root, entschema.CodePattern, "pattern", r.Pattern.String())
	}
	return nil
}

// Combine widens both length bounds. The pattern survives only when both
// sides carry the same one.
func (r StringRestrictions) Combine(o StringRestrictions) StringRestrictions {
	out := StringRestrictions{}
	if r.MinLength != nil && o.MinLength != nil {
		out.MinLength = Length(min(*r.MinLength, *o.MinLength))
	}
	if r.MaxLength != nil && o.MaxLength != nil {
		out.MaxLength = Length(max(*r.MaxLength, *o.MaxLength))
	}
	if r.Pattern != nil && samePattern(r.Pattern, o.Pattern) {
		out.Pattern = r.Pattern
	}
	return out
}

// IsSuperset reports whether every string accepted by o is accepted by r.
func (r StringRestrictions) IsSuperset(o StringRestrictions) bool {
	if r.MinLength != nil && (o.MinLength == nil || *o.MinLength < *r.MinLength) {
		return false
	}
	if r.MaxLength != nil && (o.MaxLength == nil || *o.MaxLength > *r.MaxLength) {
		return false
	}
	if r.Pattern != nil && !samePattern(r.Pattern, o.Pattern) {
		return false
	}
	return true
}
