package entity

import (
	"bytes"
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/entschema/codec"
)

// Property is a single named value of an Entity.
type Property struct {
	Name  string
	Value Value
}

// Entity is an immutable, ordered record. Property names compare
// case-insensitively but keep the casing they were first stored with.
// Mutators return a new Entity; the receiver is never changed.
type Entity struct {
	props []Property
}

// Empty is the entity without properties.
var Empty = Entity{}

func (Entity) Kind() Kind { return KindEntity }
func (Entity) isValue()   {}

// New builds an entity from properties in the given order. It fails when two
// names are equal under case-insensitive comparison.
func New(props ...Property) (Entity, error) {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if indexOf(out, p.Name) >= 0 {
			return Entity{}, fmt.Errorf("entity: duplicate property %q", p.Name)
		}
		if p.Value == nil {
			p.Value = Null{}
		}
		out = append(out, p)
	}
	return Entity{props: out}, nil
}

// MustNew is like New but panics on duplicate names.
func MustNew(props ...Property) Entity {
	e, err := New(props...)
	if err != nil {
		panic(err)
	}
	return e
}

// FromPairs builds an entity from alternating name/value arguments, converting
// values with Of. Later duplicates replace earlier ones.
func FromPairs(kv ...any) Entity {
	e := Empty
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.With(fmt.Sprint(kv[i]), Of(kv[i+1]))
	}
	return e
}

func indexOf(props []Property, name string) int {
	for i := range props {
		if strings.EqualFold(props[i].Name, name) {
			return i
		}
	}
	return -1
}

// Len returns the number of properties.
func (e Entity) Len() int { return len(e.props) }

// Get returns the value stored under name.
func (e Entity) Get(name string) (Value, bool) {
	if i := indexOf(e.props, name); i >= 0 {
		return e.props[i].Value, true
	}
	return nil, false
}

// Has reports whether a property named name exists.
func (e Entity) Has(name string) bool { return indexOf(e.props, name) >= 0 }

// Names returns the property names in order.
func (e Entity) Names() []string {
	out := make([]string, len(e.props))
	for i := range e.props {
		out[i] = e.props[i].Name
	}
	return out
}

// Properties returns a copy of the properties in order.
func (e Entity) Properties() []Property {
	return append([]Property(nil), e.props...)
}

// All iterates properties in order.
func (e Entity) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, p := range e.props {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

// With returns an entity where name holds v. An existing property keeps its
// position and original casing; a new one is appended.
func (e Entity) With(name string, v Value) Entity {
	if v == nil {
		v = Null{}
	}
	i := indexOf(e.props, name)
	if i < 0 {
		props := make([]Property, len(e.props), len(e.props)+1)
		copy(props, e.props)
		return Entity{props: append(props, Property{Name: name, Value: v})}
	}
	props := append([]Property(nil), e.props...)
	props[i].Value = v
	return Entity{props: props}
}

// Without returns an entity without the named property.
func (e Entity) Without(name string) Entity {
	i := indexOf(e.props, name)
	if i < 0 {
		return e
	}
	props := make([]Property, 0, len(e.props)-1)
	props = append(props, e.props[:i]...)
	props = append(props, e.props[i+1:]...)
	return Entity{props: props}
}

// Equal reports whether o is an entity with the same property names (compared
// case-insensitively) holding equal values. Property order is not compared.
func (e Entity) Equal(o Value) bool {
	oe, ok := o.(Entity)
	if !ok || len(e.props) != len(oe.props) {
		return false
	}
	for _, p := range e.props {
		ov, ok := oe.Get(p.Name)
		if !ok || !Equal(p.Value, ov) {
			return false
		}
	}
	return true
}

// String renders the entity as compact JSON.
func (e Entity) String() string { return Primitive(e) }

// MarshalJSON renders the entity as a JSON object in property order.
func (e Entity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Entity:
		buf.WriteByte('{')
		for i, p := range t.props {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(p.Name)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case List:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(ToAny(v))
		if err != nil {
			return fmt.Errorf("entity: marshal %s: %w", v.Kind(), err)
		}
		buf.Write(b)
	}
	return nil
}

// ToAny converts v into plain Go data suitable for generic encoders: nil,
// string, int64, float64, bool, []any and map[string]any. Enumerations
// become their member name and date-times their round-trip string. NaN and
// infinite doubles have no JSON number form and become "NaN", "+Inf" or
// "-Inf". Entity property order is lost.
func ToAny(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(t)
	case Integer:
		return int64(t)
	case Double:
		if f := float64(t); math.IsNaN(f) || math.IsInf(f, 0) {
			return Primitive(t)
		}
		return float64(t)
	case Boolean:
		return bool(t)
	case Enumeration:
		return t.Member
	case DateTime:
		return codec.FormatRoundTrip(time.Time(t))
	case Entity:
		m := make(map[string]any, len(t.props))
		for _, p := range t.props {
			m[p.Name] = ToAny(p.Value)
		}
		return m
	case List:
		out := make([]any, len(t))
		for i := range t {
			out[i] = ToAny(t[i])
		}
		return out
	}
	return nil
}
