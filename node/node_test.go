package node_test

import (
	"regexp"
	"testing"

	"github.com/reoring/entschema/node"
	"github.com/reoring/entschema/restrict"
)

func sampleNodes() map[string]node.Node {
	return map[string]node.Node{
		"true":    node.True(),
		"false":   node.False(),
		"null":    node.Null(),
		"boolean": node.Boolean(),
		"integer": node.Integer(),
		"bounded": node.Integer().WithRestrictions(restrict.NumberRestrictions{Min: restrict.Bound(0), Max: restrict.Bound(10)}),
		"number":  node.Number().WithRestrictions(restrict.NumberRestrictions{MultipleOf: restrict.Bound(0.5)}),
		"string":  node.String(),
		"pattern": node.String().WithRestrictions(restrict.StringRestrictions{Pattern: regexp.MustCompile(`^[A-Z]`), MaxLength: restrict.Length(5)}),
		"date":    node.DateTime(),
		"colors":  node.String().WithEnum(restrict.AllowStrings("red", "green")),
		"array":   node.Array(node.Integer()),
		"tuple":   node.Tuple(node.String(), node.Integer(), node.Boolean()),
		"oneof":   node.OneOf(node.Integer(), node.String()),
		"object": node.Object().
			Field("id", node.Integer()).Required().
			Field("tags", node.Array(node.String())).
			MustBuild(),
	}
}

func TestIsSuperset_Reflexive(t *testing.T) {
	for name, n := range sampleNodes() {
		if !n.IsSuperset(n) {
			t.Fatalf("%s: node must be a superset of itself", name)
		}
		if !n.Equal(n) {
			t.Fatalf("%s: node must equal itself", name)
		}
	}
}

func TestIsSuperset_TopAndBottom(t *testing.T) {
	for name, n := range sampleNodes() {
		if !node.True().IsSuperset(n) {
			t.Fatalf("%s: True must dominate every node", name)
		}
		if !n.IsSuperset(node.False()) {
			t.Fatalf("%s: every node must dominate False", name)
		}
	}
}

func TestIsSuperset_CrossVariant(t *testing.T) {
	wide := node.Number().WithRestrictions(restrict.NumberRestrictions{Min: restrict.Bound(0)})
	narrow := node.Integer().WithRestrictions(restrict.NumberRestrictions{Min: restrict.Bound(1), Max: restrict.Bound(3)})
	if !wide.IsSuperset(narrow) {
		t.Fatalf("number should dominate a tighter integer")
	}
	if narrow.IsSuperset(wide) || node.Integer().IsSuperset(node.Number()) {
		t.Fatalf("integer must not dominate number")
	}
	if !node.Number().IsSuperset(node.Integer()) {
		t.Fatalf("integers are numbers")
	}
	if node.String().IsSuperset(node.Integer()) || node.Boolean().IsSuperset(node.Null()) {
		t.Fatalf("unrelated variants must not dominate each other")
	}
	if !node.String().IsSuperset(node.DateTime()) || node.DateTime().IsSuperset(node.String()) {
		t.Fatalf("any-format string dominates date-time, not the reverse")
	}
}

func TestIsSuperset_OneOf(t *testing.T) {
	u := node.OneOf(node.Number(), node.String())
	if !u.IsSuperset(node.Integer()) {
		t.Fatalf("an option dominating the node is enough")
	}
	if !u.IsSuperset(node.OneOf(node.Integer(), node.DateTime())) {
		t.Fatalf("every option of the other union is dominated")
	}
	if u.IsSuperset(node.OneOf(node.Integer(), node.Boolean())) {
		t.Fatalf("boolean option is not dominated")
	}
	if !node.Number().IsSuperset(node.OneOf(node.Integer(), node.Number())) {
		t.Fatalf("a node dominating every option dominates the union")
	}
}

func TestIsSuperset_ObjectsAreConservative(t *testing.T) {
	a := node.Object().Field("id", node.Integer()).Required().MustBuild()
	b := node.Object().Field("id", node.Integer()).Required().Field("x", node.String()).MustBuild()
	if a.IsSuperset(b) || b.IsSuperset(a) {
		t.Fatalf("distinct objects never dominate each other")
	}
	same := node.Object().Field("ID", node.Integer()).Required().MustBuild()
	if !a.IsSuperset(same) {
		t.Fatalf("structurally equal objects dominate each other")
	}
}

func TestCombine_IsSupersetOfBoth(t *testing.T) {
	pairs := [][2]node.Node{
		{node.Integer(), node.Number()},
		{node.Integer().WithRestrictions(restrict.NumberRestrictions{Min: restrict.Bound(5)}), node.Integer().WithRestrictions(restrict.NumberRestrictions{Min: restrict.Bound(1), Max: restrict.Bound(2)})},
		{node.Integer(), node.String()},
		{node.String(), node.DateTime()},
		{node.String().WithEnum(restrict.AllowStrings("a", "b")), node.String().WithEnum(restrict.AllowStrings("b", "c"))},
		{node.String().WithEnum(restrict.AllowStrings("a")), node.String()},
		{node.Array(node.Integer()), node.Array(node.String())},
		{node.Tuple(node.Integer(), node.String()), node.Array(node.Number())},
		{node.OneOf(node.Integer(), node.String()), node.Boolean()},
		{node.OneOf(node.Integer(), node.Null()), node.OneOf(node.Number(), node.Boolean())},
		{node.Null(), node.False()},
		{node.Boolean(), node.True()},
	}
	for i, p := range pairs {
		c := node.Combine(p[0], p[1])
		if !c.IsSuperset(p[0]) || !c.IsSuperset(p[1]) {
			t.Fatalf("pair %d: combine %#v is not a superset of both inputs", i, c)
		}
	}
}

func TestCombine_Commutative(t *testing.T) {
	pairs := [][2]node.Node{
		{node.Integer(), node.Number()},
		{node.Integer(), node.String()},
		{node.String(), node.DateTime()},
		{node.String().WithEnum(restrict.AllowStrings("a", "b")), node.String().WithEnum(restrict.AllowStrings("b", "c"))},
		{node.Integer().WithRestrictions(restrict.NumberRestrictions{MultipleOf: restrict.Bound(4)}), node.Integer().WithRestrictions(restrict.NumberRestrictions{MultipleOf: restrict.Bound(6)})},
		{node.Null(), node.Boolean()},
	}
	for i, p := range pairs {
		ab, ba := node.Combine(p[0], p[1]), node.Combine(p[1], p[0])
		if !ab.Equal(ba) {
			t.Fatalf("pair %d: %#v != %#v", i, ab, ba)
		}
	}
}

func TestCombine_Identities(t *testing.T) {
	n := node.Integer()
	if got := node.Combine(n, node.False()); !got.Equal(n) {
		t.Fatalf("False is neutral, got %#v", got)
	}
	if got := node.Combine(node.False(), n); !got.Equal(n) {
		t.Fatalf("False is neutral, got %#v", got)
	}
	if _, ok := node.Combine(n, node.True()).(node.TrueNode); !ok {
		t.Fatalf("True absorbs")
	}
	if got := node.Combine(node.Integer(), node.Number()); !got.Equal(node.Number()) {
		t.Fatalf("integer joins into number, got %#v", got)
	}
	u, ok := node.Combine(node.Integer(), node.String()).(node.OneOfNode)
	if !ok || len(u.Options) != 2 {
		t.Fatalf("incompatible scalars become a union, got %#v", u)
	}
	if got := node.Combine(u, u); !got.Equal(u) {
		t.Fatalf("union combine should deduplicate, got %#v", got)
	}
}

func TestCombine_OneOfAppendsOptions(t *testing.T) {
	u := node.OneOf(node.DateTime(), node.Integer())
	c, ok := node.Combine(u, node.String()).(node.OneOfNode)
	if !ok {
		t.Fatalf("union combine should stay a union")
	}
	want := []node.Node{node.DateTime(), node.Integer(), node.String()}
	if len(c.Options) != len(want) {
		t.Fatalf("unexpected options: %#v", c.Options)
	}
	for i := range want {
		if !c.Options[i].Equal(want[i]) {
			t.Fatalf("option %d: got %#v, want %#v", i, c.Options[i], want[i])
		}
	}
	c, _ = node.Combine(c, node.OneOf(node.Integer(), node.Number())).(node.OneOfNode)
	if len(c.Options) != 4 || !c.Options[3].Equal(node.Number()) {
		t.Fatalf("existing options stay untouched and duplicates are dropped, got %#v", c.Options)
	}
}

func TestCombine_Objects(t *testing.T) {
	a := node.Object().
		Field("id", node.Integer()).Required().
		Field("name", node.String()).Required().
		MustBuild()
	b := node.Object().
		Field("ID", node.Number()).Required().
		Field("email", node.String()).Required().
		MustBuild()
	c, ok := node.Combine(a, b).(node.ObjectNode)
	if !ok {
		t.Fatalf("objects combine into an object")
	}
	var names []string
	for _, p := range c.Properties.All() {
		names = append(names, p.Name)
	}
	if len(names) != 3 || names[0] != "id" || names[1] != "name" || names[2] != "email" {
		t.Fatalf("unexpected property order: %v", names)
	}
	id, _ := c.Properties.Get("id")
	if !id.Required || !id.Node.Equal(node.Number()) {
		t.Fatalf("id should stay required and widen to number: %#v", id)
	}
	for _, name := range []string{"name", "email"} {
		if p, _ := c.Properties.Get(name); p.Required {
			t.Fatalf("%s present on one side should be optional", name)
		}
	}
}

func TestObjectBuilder_RejectsDuplicates(t *testing.T) {
	_, err := node.Object().Field("a", node.String()).Field("A", node.Integer()).Build()
	if err == nil {
		t.Fatalf("expected duplicate property error")
	}
}
