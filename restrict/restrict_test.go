package restrict_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	"github.com/reoring/entschema/restrict"
)

var noRoot = entschema.TransformRoot{}

func messages(t *testing.T, err error) []string {
	t.Helper()
	vs, ok := entschema.AsViolations(err)
	if !ok {
		t.Fatalf("expected Violations, got %v", err)
	}
	return vs.Messages()
}

func TestNumberRestrictions_Bounds(t *testing.T) {
	r := restrict.NumberRestrictions{Min: restrict.Bound(0), Max: restrict.Bound(10)}
	if err := r.Test(10, entschema.Root(), noRoot); err != nil {
		t.Fatalf("10 should pass: %v", err)
	}
	err := r.Test(10.0000001, entschema.Root().Field("qty"), noRoot)
	if diff := cmp.Diff([]string{"Should be <= 10"}, messages(t, err)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Should be >= 0"}, messages(t, r.Test(-1, entschema.Root(), noRoot))); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	ex := restrict.NumberRestrictions{ExclusiveMin: restrict.Bound(1), ExclusiveMax: restrict.Bound(2.5)}
	if err := ex.Test(1, entschema.Root(), noRoot); err == nil {
		t.Fatalf("exclusive min should reject the bound")
	}
	if diff := cmp.Diff([]string{"Should be < 2.5"}, messages(t, ex.Test(2.5, entschema.Root(), noRoot))); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberRestrictions_MultipleOf(t *testing.T) {
	r := restrict.NumberRestrictions{MultipleOf: restrict.Bound(0.5)}
	if err := r.Test(2.5, entschema.Root(), noRoot); err != nil {
		t.Fatalf("2.5 is a multiple of 0.5: %v", err)
	}
	if diff := cmp.Diff([]string{"Should be a multiple of 0.5"}, messages(t, r.Test(2.2, entschema.Root(), noRoot))); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	zero := restrict.NumberRestrictions{MultipleOf: restrict.Bound(0)}
	if diff := cmp.Diff([]string{"Cannot be a multiple of 0"}, messages(t, zero.Test(0, entschema.Root(), noRoot))); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberRestrictions_CombineIsSupersetOfBoth(t *testing.T) {
	cases := []struct{ a, b restrict.NumberRestrictions }{
		{restrict.NumberRestrictions{Min: restrict.Bound(0), Max: restrict.Bound(10)}, restrict.NumberRestrictions{Min: restrict.Bound(5), Max: restrict.Bound(20)}},
		{restrict.NumberRestrictions{MultipleOf: restrict.Bound(4)}, restrict.NumberRestrictions{MultipleOf: restrict.Bound(6)}},
		{restrict.NumberRestrictions{MultipleOf: restrict.Bound(0.3)}, restrict.NumberRestrictions{MultipleOf: restrict.Bound(0.2)}},
		{restrict.NumberRestrictions{ExclusiveMax: restrict.Bound(3)}, restrict.NoNumberRestrictions},
	}
	for i, c := range cases {
		got := c.a.Combine(c.b)
		if !got.IsSuperset(c.a) || !got.IsSuperset(c.b) {
			t.Fatalf("case %d: combine %+v is not a superset of both inputs", i, got)
		}
		if !got.Equal(c.b.Combine(c.a)) {
			t.Fatalf("case %d: combine is not commutative", i)
		}
	}
	got := cases[1].a.Combine(cases[1].b)
	if got.MultipleOf == nil || *got.MultipleOf != 2 {
		t.Fatalf("expected multipleOf 2, got %+v", got.MultipleOf)
	}
}

func TestNumberRestrictions_IsSuperset(t *testing.T) {
	wide := restrict.NumberRestrictions{Min: restrict.Bound(0)}
	narrow := restrict.NumberRestrictions{Min: restrict.Bound(1), Max: restrict.Bound(5)}
	if !wide.IsSuperset(narrow) || narrow.IsSuperset(wide) {
		t.Fatalf("superset relation wrong")
	}
	if !restrict.NoNumberRestrictions.IsSuperset(narrow) {
		t.Fatalf("no restrictions is the top element")
	}
	if !narrow.IsSuperset(narrow) {
		t.Fatalf("superset must be reflexive")
	}
	excl := restrict.NumberRestrictions{ExclusiveMin: restrict.Bound(0)}
	if !wide.IsSuperset(excl) || excl.IsSuperset(wide) {
		t.Fatalf("exclusive bound handling wrong")
	}
}

func TestStringRestrictions(t *testing.T) {
	r := restrict.StringRestrictions{MinLength: restrict.Length(2), MaxLength: restrict.Length(4), Pattern: regexp.MustCompile(`^[a-z]+$`)}
	if err := r.Test("abc", entschema.Root(), noRoot); err != nil {
		t.Fatalf("abc should pass: %v", err)
	}
	cases := map[string]string{
		"a":     "Should have length >= 2",
		"abcde": "Should have length <= 4",
		"AB":    "Should match Regex: ^[a-z]+$",
	}
	for in, want := range cases {
		if diff := cmp.Diff([]string{want}, messages(t, r.Test(in, entschema.Root(), noRoot))); diff != "" {
			t.Fatalf("Test(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
	// runes, not bytes
	if err := r.Test("ab", entschema.Root(), noRoot); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := (restrict.StringRestrictions{MaxLength: restrict.Length(2)}).Test("日本", entschema.Root(), noRoot); err != nil {
		t.Fatalf("length should count runes: %v", err)
	}

	other := restrict.StringRestrictions{MinLength: restrict.Length(1), MaxLength: restrict.Length(8), Pattern: regexp.MustCompile(`x`)}
	c := r.Combine(other)
	if c.Pattern != nil {
		t.Fatalf("differing patterns must be dropped")
	}
	if *c.MinLength != 1 || *c.MaxLength != 8 {
		t.Fatalf("lengths not widened: %+v", c)
	}
	if !c.IsSuperset(r) || !c.IsSuperset(other) || r.IsSuperset(c) {
		t.Fatalf("superset relation wrong")
	}
}

func TestEnumeratedValues_Canonicalizes(t *testing.T) {
	e := restrict.AllowStrings("red", "green", "blue")
	got, changed, err := e.TryTransform(entschema.Root(), entity.String("Green"), false, noRoot)
	if err != nil || !changed {
		t.Fatalf("expected canonicalization, err=%v changed=%v", err, changed)
	}
	if !got.Equal(entity.String("green")) {
		t.Fatalf("got %v", got)
	}
	if _, changed, err := e.TryTransform(entschema.Root(), entity.String("red"), false, noRoot); err != nil || changed {
		t.Fatalf("exact literal should be unchanged, err=%v changed=%v", err, changed)
	}
	_, _, err = e.TryTransform(entschema.Root(), entity.String("Green"), true, noRoot)
	if diff := cmp.Diff([]string{"Should be one of: red, green, blue"}, messages(t, err)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	_, _, err = restrict.Allow().TryTransform(entschema.Root(), entity.String("x"), false, noRoot)
	if diff := cmp.Diff([]string{"No values are allowed by the enumerated values restriction"}, messages(t, err)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumeratedValues_Lattice(t *testing.T) {
	a := restrict.AllowStrings("a", "b")
	b := restrict.AllowStrings("b", "c")
	c := a.Combine(b)
	if diff := cmp.Diff("a, b, c", c.String()); diff != "" {
		t.Fatalf("combine mismatch (-want +got):\n%s", diff)
	}
	if !c.IsSuperset(a) || !c.IsSuperset(b) || a.IsSuperset(c) {
		t.Fatalf("superset relation wrong")
	}
	if !restrict.Unrestricted().IsSuperset(a) || a.IsSuperset(restrict.Unrestricted()) {
		t.Fatalf("unrestricted is the top element")
	}
	if a.Combine(restrict.Unrestricted()).IsRestricted() {
		t.Fatalf("unrestricted absorbs")
	}
}

func TestDateTimeStringFormat(t *testing.T) {
	f := restrict.DateTimeStringFormat{}
	got, changed, err := f.TryTransform(entschema.Root(), entity.String("2024-03-01T10:00:00Z"), nil, noRoot)
	if err != nil || !changed {
		t.Fatalf("expected a parsed date, err=%v", err)
	}
	want := entity.DateTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}

	s := format.DefaultSettings()
	s.DateFormatter = format.NewPathFormatter(map[string][]string{"start": {"02/01/2006"}})
	got, _, err = f.TryTransform(entschema.Root().Field("start"), entity.String("05/04/2024"), s, noRoot)
	if err != nil {
		t.Fatalf("configured format: %v", err)
	}
	if !got.Equal(entity.DateTime(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC))) {
		t.Fatalf("day/month order not honored: %v", got)
	}

	if _, changed, err := f.TryTransform(entschema.Root(), want, nil, noRoot); err != nil || changed {
		t.Fatalf("DateTime values pass through unchanged")
	}
	_, _, err = f.TryTransform(entschema.Root(), entity.String("not a date"), nil, noRoot)
	if diff := cmp.Diff([]string{"Should be DateTime"}, messages(t, err)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineFormats(t *testing.T) {
	dt := restrict.DateTimeStringFormat{}
	if restrict.CombineFormats(dt, dt).Name() != "date-time" {
		t.Fatalf("same formats combine to themselves")
	}
	if restrict.CombineFormats(dt, nil).Name() != "" {
		t.Fatalf("differing formats widen to any")
	}
	if !restrict.FormatIsSuperset(nil, dt) || restrict.FormatIsSuperset(dt, nil) {
		t.Fatalf("any is the top format")
	}
}
