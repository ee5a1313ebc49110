package entity_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/entschema/entity"
)

func TestEntity_CaseInsensitiveKeysPreserveCasing(t *testing.T) {
	e := entity.Empty.With("Name", entity.String("x")).With("id", entity.Integer(1))

	v, ok := e.Get("NAME")
	if !ok || !v.Equal(entity.String("x")) {
		t.Fatalf("case-insensitive get failed: %v %v", v, ok)
	}

	e2 := e.With("NAME", entity.String("y"))
	if diff := cmp.Diff([]string{"Name", "id"}, e2.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got, _ := e2.Get("name"); !got.Equal(entity.String("y")) {
		t.Fatalf("expected replaced value, got %v", got)
	}
	// receiver unchanged
	if got, _ := e.Get("name"); !got.Equal(entity.String("x")) {
		t.Fatalf("original entity mutated: %v", got)
	}
}

func TestEntity_NewRejectsDuplicates(t *testing.T) {
	_, err := entity.New(
		entity.Property{Name: "a", Value: entity.Integer(1)},
		entity.Property{Name: "A", Value: entity.Integer(2)},
	)
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestEntity_WithoutAndOrder(t *testing.T) {
	e := entity.FromPairs("a", 1, "b", 2, "c", 3)
	e2 := e.Without("B")
	if diff := cmp.Diff([]string{"a", "c"}, e2.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if e.Len() != 3 {
		t.Fatalf("original mutated")
	}
	if e.Without("zzz").Len() != 3 {
		t.Fatalf("removing a missing key should be a no-op")
	}
}

func TestEntity_EqualIgnoresOrderAndCase(t *testing.T) {
	a := entity.FromPairs("a", 1, "b", "x")
	b := entity.FromPairs("B", "x", "A", 1)
	if !a.Equal(b) {
		t.Fatalf("expected equal entities")
	}
	if a.Equal(entity.FromPairs("a", 1)) {
		t.Fatalf("expected different lengths to be unequal")
	}
}

func TestEntity_MarshalJSONKeepsOrder(t *testing.T) {
	nested := entity.FromPairs("z", true, "y", nil)
	e := entity.FromPairs(
		"b", 2,
		"a", "text",
		"d", 1.5,
		"n", nested,
		"l", []any{"x", 1},
		"e", entity.Enumeration{Type: "Color", Member: "red"},
		"t", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	b, err := e.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	want := `{"b":2,"a":"text","d":1.5,"n":{"z":true,"y":null},"l":["x",1],"e":"red","t":"2025-01-01T00:00:00Z"}`
	if string(b) != want {
		t.Fatalf("unexpected json\n got=%s\nwant=%s", b, want)
	}
}

func TestEntity_MarshalJSONNonFiniteDoubles(t *testing.T) {
	e := entity.FromPairs("n", entity.FromPairs("x", math.NaN()), "l", []any{math.Inf(1), math.Inf(-1)})
	b, err := e.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	want := `{"n":{"x":"NaN"},"l":["+Inf","-Inf"]}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(`{"x":"NaN"}`, entity.Primitive(entity.FromPairs("x", math.NaN()))); diff != "" {
		t.Fatalf("primitive mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimitive(t *testing.T) {
	cases := []struct {
		in   entity.Value
		want string
	}{
		{entity.Null{}, ""},
		{entity.String("abc"), "abc"},
		{entity.Integer(-42), "-42"},
		{entity.Double(0.1), "0.1"},
		{entity.Double(42), "42"},
		{entity.Boolean(true), "true"},
		{entity.Enumeration{Type: "Color", Member: "Green"}, "Green"},
		{entity.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)), "2025-01-02T03:04:05Z"},
		{entity.List{entity.String("a"), entity.Integer(2)}, "a,2"},
		{entity.List{}, ""},
		{entity.FromPairs("a", 1), `{"a":1}`},
	}
	for _, c := range cases {
		if got := entity.Primitive(c.in); got != c.want {
			t.Fatalf("Primitive(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValueEquality(t *testing.T) {
	if (entity.List{}).Equal(entity.Null{}) {
		t.Fatalf("empty list must differ from null")
	}
	if !entity.Equal(nil, entity.Null{}) {
		t.Fatalf("nil value should equal Null")
	}
	if entity.Integer(1).Equal(entity.Double(1)) {
		t.Fatalf("integer and double are different variants")
	}
	a := entity.Enumeration{Type: "Color", Member: "red"}
	if a.Equal(entity.Enumeration{Type: "Color", Member: "Red"}) {
		t.Fatalf("enumeration equality is case-sensitive")
	}
	if !(entity.List{entity.Integer(1), entity.String("x")}).Equal(entity.List{entity.Integer(1), entity.String("x")}) {
		t.Fatalf("expected list equality")
	}
}

func TestTryAccessors(t *testing.T) {
	if _, ok := entity.TryInteger(entity.String("1")); ok {
		t.Fatalf("TryInteger should not convert strings")
	}
	if i, ok := entity.TryInteger(entity.Integer(7)); !ok || i != 7 {
		t.Fatalf("TryInteger failed: %v %v", i, ok)
	}
	if l, ok := entity.TryList(entity.List{}); !ok || len(l) != 0 {
		t.Fatalf("TryList failed")
	}
	if _, ok := entity.TryEntity(entity.FromPairs("a", 1)); !ok {
		t.Fatalf("TryEntity failed")
	}
	if !entity.IsNull(nil) || entity.IsNull(entity.String("")) {
		t.Fatalf("IsNull mismatch")
	}
}
