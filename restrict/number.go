package restrict

import (
	"math"
	"strconv"

	"github.com/reoring/entschema"
)

// NumberRestrictions bounds a numeric node. Every field is optional; the zero
// value (NoNumberRestrictions) accepts every number.
type NumberRestrictions struct {
	Min          *float64
	Max          *float64
	ExclusiveMin *float64
	ExclusiveMax *float64
	MultipleOf   *float64
}

// NoNumberRestrictions is the top element: it accepts every number.
var NoNumberRestrictions = NumberRestrictions{}

// Bound returns a pointer to f for use in restriction literals.
func Bound(f float64) *float64 { return &f }

const epsilon = 1e-9

// IsEmpty reports whether no bound is set.
func (r NumberRestrictions) IsEmpty() bool {
	return r.Min == nil && r.Max == nil && r.ExclusiveMin == nil && r.ExclusiveMax == nil && r.MultipleOf == nil
}

// Equal compares the bounds by value.
func (r NumberRestrictions) Equal(o NumberRestrictions) bool {
	return eqFloat(r.Min, o.Min) && eqFloat(r.Max, o.Max) &&
		eqFloat(r.ExclusiveMin, o.ExclusiveMin) && eqFloat(r.ExclusiveMax, o.ExclusiveMax) &&
		eqFloat(r.MultipleOf, o.MultipleOf)
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// Test checks n against every bound and returns the first violation.
func (r NumberRestrictions) Test(n float64, path entschema.Path, root entschema.TransformRoot) error {
	if r.MultipleOf != nil && *r.MultipleOf == 0 {
		return entschema.Fail(path, root, entschema.CodeZeroMultipleOf)
	}
	if r.Min != nil && n < *r.Min {
		return entschema.Fail(path, root, entschema.CodeBelowMinimum, "bound", formatFloat(*r.Min))
	}
	if r.ExclusiveMin != nil && n <= *r.ExclusiveMin {
		return entschema.Fail(path, root, entschema.CodeBelowExclusiveMinimum, "bound", formatFloat(*r.ExclusiveMin))
	}
	if r.Max != nil && n > *r.Max {
		return entschema.Fail(path, root, entschema.CodeAboveMaximum, "bound", formatFloat(*r.Max))
	}
	if r.ExclusiveMax != nil && n >= *r.ExclusiveMax {
		return entschema.Fail(path, root, entschema.CodeAboveExclusiveMaximum, "bound", formatFloat(*r.ExclusiveMax))
	}
	if r.MultipleOf != nil && !isMultiple(n, *r.MultipleOf) {
		return entschema.Fail(path, root, entschema.CodeNotMultipleOf, "multipleOf", formatFloat(*r.MultipleOf))
	}
	return nil
}

func isMultiple(n, m float64) bool {
	if m == 0 {
		return n == 0
	}
	q := n / m
	return math.Abs(q-math.Round(q)) < epsilon
}

// Combine returns restrictions accepting every number either side accepts.
// Identical bounds pass through; differing lower bounds widen to the smaller,
// upper bounds to the larger and MultipleOf to the greatest common divisor. A
// bound missing on either side is missing in the result.
func (r NumberRestrictions) Combine(o NumberRestrictions) NumberRestrictions {
	return NumberRestrictions{
		Min:          widen(r.Min, o.Min, math.Min),
		Max:          widen(r.Max, o.Max, math.Max),
		ExclusiveMin: widen(r.ExclusiveMin, o.ExclusiveMin, math.Min),
		ExclusiveMax: widen(r.ExclusiveMax, o.ExclusiveMax, math.Max),
		MultipleOf:   widen(r.MultipleOf, o.MultipleOf, gcd),
	}
}

func widen(a, b *float64, pick func(x, y float64) float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	if *a == *b {
		return Bound(*a)
	}
	return Bound(pick(*a, *b))
}

// gcd is the greatest common divisor of two (possibly fractional) steps.
func gcd(a, b float64) float64 {
	a, b = math.Abs(a), math.Abs(b)
	if a == math.Trunc(a) && b == math.Trunc(b) && a < 1<<53 && b < 1<<53 {
		x, y := int64(a), int64(b)
		for y != 0 {
			x, y = y, x%y
		}
		return float64(x)
	}
	for b > epsilon {
		a, b = b, math.Mod(a, b)
	}
	// trim floating point noise accumulated by Mod
	f, _ := strconv.ParseFloat(strconv.FormatFloat(a, 'g', 12, 64), 64)
	return f
}

// IsSuperset reports whether every number accepted by o is accepted by r.
// Each bound present on r must be matched by an equal or tighter bound on o.
func (r NumberRestrictions) IsSuperset(o NumberRestrictions) bool {
	if r.Min != nil && !lowerCovered(*r.Min, o, false) {
		return false
	}
	if r.ExclusiveMin != nil && !lowerCovered(*r.ExclusiveMin, o, true) {
		return false
	}
	if r.Max != nil && !upperCovered(*r.Max, o, false) {
		return false
	}
	if r.ExclusiveMax != nil && !upperCovered(*r.ExclusiveMax, o, true) {
		return false
	}
	if r.MultipleOf != nil {
		if o.MultipleOf == nil || !isMultiple(*o.MultipleOf, *r.MultipleOf) {
			return false
		}
	}
	return true
}

func lowerCovered(bound float64, o NumberRestrictions, exclusive bool) bool {
	if o.Min != nil && (*o.Min > bound || (!exclusive && *o.Min == bound)) {
		return true
	}
	return o.ExclusiveMin != nil && *o.ExclusiveMin >= bound
}

func upperCovered(bound float64, o NumberRestrictions, exclusive bool) bool {
	if o.Max != nil && (*o.Max < bound || (!exclusive && *o.Max == bound)) {
		return true
	}
	return o.ExclusiveMax != nil && *o.ExclusiveMax <= bound
}
