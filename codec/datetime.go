package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// RoundTripLayout is the layout used to render date-times so that parsing the
// output yields the same instant.
const RoundTripLayout = time.RFC3339Nano

// ErrNoFormat is returned when a value matches none of the tried layouts.
var ErrNoFormat = errors.New("codec: value does not match any date-time format")

// defaultLayouts are tried before any configured format. They are all
// ISO-8601 shaped, so no day/month ambiguity can arise here.
var defaultLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatRoundTrip renders t in UTC using RoundTripLayout (Go trims trailing
// zeros of the fractional second).
func FormatRoundTrip(t time.Time) string {
	return t.UTC().Format(RoundTripLayout)
}

// ParseDefault parses s with the built-in ISO-8601 layouts. Values without a
// zone are read as UTC.
func ParseDefault(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoFormat
	}
	for _, layout := range defaultLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoFormat
}

// ParseWithFormat parses s with a single configured format. Formats containing
// '%' are strftime layouts; anything else is a Go reference layout.
func ParseWithFormat(s, format string) (time.Time, error) {
	if format == "" {
		return time.Time{}, fmt.Errorf("codec: empty date-time format")
	}
	s = strings.TrimSpace(s)
	if strings.ContainsRune(format, '%') {
		t, err := timefmt.Parse(s, format)
		if err != nil {
			return time.Time{}, fmt.Errorf("codec: parse %q with %q: %w", s, format, err)
		}
		return t, nil
	}
	t, err := time.Parse(format, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: parse %q with %q: %w", s, format, err)
	}
	return t, nil
}

// Parse tries the default layouts first and then each configured format in
// order, returning the first successful parse.
func Parse(s string, formats []string) (time.Time, error) {
	if t, err := ParseDefault(s); err == nil {
		return t, nil
	}
	for _, f := range formats {
		if t, err := ParseWithFormat(s, f); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoFormat
}
