package restrict

import (
	"github.com/reoring/entschema"
	"github.com/reoring/entschema/codec"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
)

// StringFormat is a semantic refinement of a string node. A format may
// convert the value into a richer one (DateTimeStringFormat yields DateTime
// values) or decline, leaving the value as is.
type StringFormat interface {
	// Name is the JSON Schema "format" keyword, empty for AnyStringFormat.
	Name() string
	// TryTransform returns the converted value and true, or false when the
	// value is left unchanged.
	TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error)
}

// AnyStringFormat accepts every string unchanged.
type AnyStringFormat struct{}

func (AnyStringFormat) Name() string { return "" }

func (AnyStringFormat) TryTransform(entschema.Path, entity.Value, *format.TransformSettings, entschema.TransformRoot) (entity.Value, bool, error) {
	return nil, false, nil
}

// DateTimeStringFormat parses strings into DateTime values using the ISO
// layouts and the date formats configured for the path.
type DateTimeStringFormat struct{}

func (DateTimeStringFormat) Name() string { return "date-time" }

func (DateTimeStringFormat) TryTransform(path entschema.Path, v entity.Value, s *format.TransformSettings, root entschema.TransformRoot) (entity.Value, bool, error) {
	switch v.(type) {
	case entity.DateTime:
		return nil, false, nil
	case nil, entity.Null, entity.Entity, entity.List:
		return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeDateTime)
	}
	t, err := codec.Parse(entity.Primitive(v), s.OrDefault().DateFormatter.Formats(path.String()))
	if err != nil {
		return nil, false, entschema.Fail(path, root, entschema.CodeShouldBeDateTime)
	}
	return entity.DateTime(t), true, nil
}

// FormatOf returns f, or AnyStringFormat when f is nil.
func FormatOf(f StringFormat) StringFormat {
	if f == nil {
		return AnyStringFormat{}
	}
	return f
}

// CombineFormats returns a when both formats are the same, otherwise
// AnyStringFormat.
func CombineFormats(a, b StringFormat) StringFormat {
	a, b = FormatOf(a), FormatOf(b)
	if a.Name() == b.Name() {
		return a
	}
	return AnyStringFormat{}
}

// FormatIsSuperset reports whether a accepts every string b accepts.
func FormatIsSuperset(a, b StringFormat) bool {
	a, b = FormatOf(a), FormatOf(b)
	return a.Name() == "" || a.Name() == b.Name()
}
