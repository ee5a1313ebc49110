package entschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/i18n"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeShouldBeNull       = "should_be_null"
	CodeShouldBeBoolean    = "should_be_boolean"
	CodeShouldBeInteger    = "should_be_integer"
	CodeTooFarFromInteger  = "too_far_from_integer"
	CodeShouldBeNumber     = "should_be_number"
	CodeShouldBeString     = "should_be_string"
	CodeShouldBeDateTime   = "should_be_datetime"
	CodeShouldBeList       = "should_be_list"
	CodeShouldBeEntity     = "should_be_entity"
	CodeMissingProperty    = "missing_property"
	CodeUnexpectedProperty = "unexpected_property"
	CodeNoMatchingOption   = "no_matching_option"
	CodeAlwaysFalse        = "always_false"
	// Restrictions
	CodeBelowMinimum          = "below_minimum"
	CodeBelowExclusiveMinimum = "below_exclusive_minimum"
	CodeAboveMaximum          = "above_maximum"
	CodeAboveExclusiveMaximum = "above_exclusive_maximum"
	CodeNotMultipleOf         = "not_multiple_of"
	CodeZeroMultipleOf        = "zero_multiple_of"
	CodeTooShort              = "too_short"
	CodeTooLong               = "too_long"
	CodePattern               = "pattern"
	CodeInvalidEnum           = "invalid_enum"
	// Configuration errors discovered while transforming; the schema must be fixed.
	CodeNoAllowedValues = "no_allowed_values"
)

// Violation is a single reason a value does not conform to a schema.
type Violation struct {
	Code    string // One of the codes listed above.
	Message string
	// Path is the property path of the offending value (for example:
	// items[2].price). The empty path denotes the top-level entity.
	Path string
	// Row is the 1-based row or record number the value came from; 0 when
	// unknown.
	Row int
	// Source is the top-level entity being transformed, kept for diagnostics.
	Source entity.Entity
	// Params carries structured parameters (e.g., {"bound": 10}) for i18n and
	// reporting.
	Params map[string]string
}

// String renders the violation as "message (at path, row n)".
func (v Violation) String() string {
	b := &strings.Builder{}
	b.WriteString(v.Message)
	switch {
	case v.Path != "" && v.Row > 0:
		fmt.Fprintf(b, " (at %s, row %d)", v.Path, v.Row)
	case v.Path != "":
		fmt.Fprintf(b, " (at %s)", v.Path)
	case v.Row > 0:
		fmt.Fprintf(b, " (row %d)", v.Row)
	}
	return b.String()
}

// Violations is a collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(vs[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages returns the message of every violation in order.
func (vs Violations) Messages() []string {
	out := make([]string, len(vs))
	for i := range vs {
		out[i] = vs[i].Message
	}
	return out
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// Collect appends the violations carried by err to dst. Errors that are not
// Violations are kept as a single violation with their text as message.
func Collect(dst Violations, err error, path Path, root TransformRoot) Violations {
	if err == nil {
		return dst
	}
	if vs, ok := AsViolations(err); ok {
		return AppendViolations(dst, vs...)
	}
	return AppendViolations(dst, Violation{Code: "error", Message: err.Error(), Path: path.String(), Row: root.Row, Source: root.Entity})
}

// NewViolation builds a violation for code at path, translating the message
// with i18n and the given key/value parameters.
func NewViolation(path Path, root TransformRoot, code string, kv ...string) Violation {
	var params map[string]string
	if len(kv) > 1 {
		params = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			params[kv[i]] = kv[i+1]
		}
	}
	return Violation{
		Code:    code,
		Message: i18n.T(code, params),
		Path:    path.String(),
		Row:     root.Row,
		Source:  root.Entity,
		Params:  params,
	}
}

// Fail returns a single-violation error for code at path.
func Fail(path Path, root TransformRoot, code string, kv ...string) error {
	return Violations{NewViolation(path, root, code, kv...)}
}
