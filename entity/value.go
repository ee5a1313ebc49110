package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/entschema/codec"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDouble
	KindBoolean
	KindEnumeration
	KindDateTime
	KindEntity
	KindList
)

var kindNames = [...]string{
	KindNull:        "null",
	KindString:      "string",
	KindInteger:     "integer",
	KindDouble:      "double",
	KindBoolean:     "boolean",
	KindEnumeration: "enumeration",
	KindDateTime:    "datetime",
	KindEntity:      "entity",
	KindList:        "list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is the closed set of values an entity property may hold. The
// implementations are Null, String, Integer, Double, Boolean, Enumeration,
// DateTime, Entity and List.
type Value interface {
	Kind() Kind
	// Equal reports structural equality.
	Equal(other Value) bool
	isValue()
}

// Null is the absent value.
type Null struct{}

// String is a text value.
type String string

// Integer is a 64-bit signed integer value.
type Integer int64

// Double is a 64-bit floating point value.
type Double float64

// Boolean is a truth value.
type Boolean bool

// Enumeration is a member of a named enumeration. Both fields compare
// case-sensitively.
type Enumeration struct {
	Type   string
	Member string
}

// DateTime is an instant in time.
type DateTime time.Time

// List is an ordered sequence of values. An empty List is distinct from Null.
type List []Value

func (Null) Kind() Kind        { return KindNull }
func (String) Kind() Kind      { return KindString }
func (Integer) Kind() Kind     { return KindInteger }
func (Double) Kind() Kind      { return KindDouble }
func (Boolean) Kind() Kind     { return KindBoolean }
func (Enumeration) Kind() Kind { return KindEnumeration }
func (DateTime) Kind() Kind    { return KindDateTime }
func (List) Kind() Kind        { return KindList }

func (Null) isValue()        {}
func (String) isValue()      {}
func (Integer) isValue()     {}
func (Double) isValue()      {}
func (Boolean) isValue()     {}
func (Enumeration) isValue() {}
func (DateTime) isValue()    {}
func (List) isValue()        {}

func (Null) Equal(o Value) bool {
	_, ok := o.(Null)
	return ok
}

func (v String) Equal(o Value) bool {
	ov, ok := o.(String)
	return ok && v == ov
}

func (v Integer) Equal(o Value) bool {
	ov, ok := o.(Integer)
	return ok && v == ov
}

func (v Double) Equal(o Value) bool {
	ov, ok := o.(Double)
	if !ok {
		return false
	}
	if math.IsNaN(float64(v)) && math.IsNaN(float64(ov)) {
		return true
	}
	return v == ov
}

func (v Boolean) Equal(o Value) bool {
	ov, ok := o.(Boolean)
	return ok && v == ov
}

func (v Enumeration) Equal(o Value) bool {
	ov, ok := o.(Enumeration)
	return ok && v == ov
}

func (v DateTime) Equal(o Value) bool {
	ov, ok := o.(DateTime)
	return ok && time.Time(v).Equal(time.Time(ov))
}

func (v List) Equal(o Value) bool {
	ov, ok := o.(List)
	if !ok || len(v) != len(ov) {
		return false
	}
	for i := range v {
		if !Equal(v[i], ov[i]) {
			return false
		}
	}
	return true
}

// Time returns the instant held by v.
func (v DateTime) Time() time.Time { return time.Time(v) }

// Equal compares two values, treating a nil Value as Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	return a.Equal(b)
}

// IsNull reports whether v is Null (or a nil Value).
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Primitive returns the canonical string rendering of v. Integers and doubles
// use round-trip safe formatting, date-times use codec.RoundTripLayout in UTC,
// lists join the primitive strings of their elements with a comma and nested
// entities render as compact JSON.
func Primitive(v Value) string {
	switch t := v.(type) {
	case nil, Null:
		return ""
	case String:
		return string(t)
	case Integer:
		return strconv.FormatInt(int64(t), 10)
	case Double:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(bool(t))
	case Enumeration:
		return t.Member
	case DateTime:
		return codec.FormatRoundTrip(time.Time(t))
	case Entity:
		b, err := t.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	case List:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Primitive(e)
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// TryString returns the text of a String value.
func TryString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// TryInteger returns the number held by an Integer value.
func TryInteger(v Value) (int64, bool) {
	i, ok := v.(Integer)
	return int64(i), ok
}

// TryDouble returns the number held by a Double value.
func TryDouble(v Value) (float64, bool) {
	d, ok := v.(Double)
	return float64(d), ok
}

// TryBoolean returns the truth value held by a Boolean value.
func TryBoolean(v Value) (bool, bool) {
	b, ok := v.(Boolean)
	return bool(b), ok
}

// TryEnumeration returns the enumeration member held by v.
func TryEnumeration(v Value) (Enumeration, bool) {
	e, ok := v.(Enumeration)
	return e, ok
}

// TryDateTime returns the instant held by a DateTime value.
func TryDateTime(v Value) (time.Time, bool) {
	d, ok := v.(DateTime)
	return time.Time(d), ok
}

// TryEntity returns the nested entity held by v.
func TryEntity(v Value) (Entity, bool) {
	e, ok := v.(Entity)
	return e, ok
}

// TryList returns the elements of a List value.
func TryList(v Value) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

// Of converts a Go value into a Value. It understands nil, Values, the common
// scalar Go types, time.Time, []any and []string; anything else becomes the
// String produced by fmt.Sprint.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Boolean(t)
	case int:
		return Integer(int64(t))
	case int32:
		return Integer(int64(t))
	case int64:
		return Integer(t)
	case float32:
		return Double(float64(t))
	case float64:
		return Double(t)
	case time.Time:
		return DateTime(t)
	case []any:
		l := make(List, len(t))
		for i := range t {
			l[i] = Of(t[i])
		}
		return l
	case []string:
		l := make(List, len(t))
		for i := range t {
			l[i] = String(t[i])
		}
		return l
	}
	return String(fmt.Sprint(v))
}
