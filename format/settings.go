package format

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DefaultRoundingPrecision is the largest distance from the nearest integer a
// double may have and still be accepted as an integer.
const DefaultRoundingPrecision = 0.01

// TransformSettings configures how loosely typed values are coerced. Build
// one per validation pass and share it read-only.
type TransformSettings struct {
	DateFormatter       Formatter
	TruthFormatter      Formatter
	FalseFormatter      Formatter
	NullFormatter       Formatter
	MultiValueFormatter Formatter
	CaseSensitive       bool
	// RemoveExtra, when set, decides what happens to properties an object
	// schema does not accept: true drops them, false reports them. When nil
	// they are reported.
	RemoveExtra       *bool
	RoundingPrecision float64
}

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() *TransformSettings {
	return &TransformSettings{
		DateFormatter:       NewFormatter(),
		TruthFormatter:      NewFormatter("true", "yes"),
		FalseFormatter:      NewFormatter("false", "no"),
		NullFormatter:       NewFormatter("null", ""),
		MultiValueFormatter: NewFormatter(","),
		RoundingPrecision:   DefaultRoundingPrecision,
	}
}

// OrDefault returns s, or DefaultSettings when s is nil.
func (s *TransformSettings) OrDefault() *TransformSettings {
	if s == nil {
		return DefaultSettings()
	}
	return s
}

// WithRemoveExtra returns a copy of s with RemoveExtra set to b.
func (s *TransformSettings) WithRemoveExtra(b bool) *TransformSettings {
	cp := *s.OrDefault()
	cp.RemoveExtra = &b
	return &cp
}

// ShouldRemoveExtra resolves the RemoveExtra policy.
func (s *TransformSettings) ShouldRemoveExtra() bool {
	return s != nil && s.RemoveExtra != nil && *s.RemoveExtra
}

type settingsFile struct {
	DateFormats          *Formatter `yaml:"dateFormats"`
	TrueValues           *Formatter `yaml:"trueValues"`
	FalseValues          *Formatter `yaml:"falseValues"`
	NullValues           *Formatter `yaml:"nullValues"`
	MultiValueDelimiters *Formatter `yaml:"multiValueDelimiters"`
	CaseSensitive        *bool      `yaml:"caseSensitive"`
	RemoveExtra          *bool      `yaml:"removeExtra"`
	RoundingPrecision    *float64   `yaml:"roundingPrecision"`
}

// LoadSettings reads YAML settings from r. Keys that are absent keep the
// values of DefaultSettings; an empty document yields the defaults.
func LoadSettings(r io.Reader) (*TransformSettings, error) {
	var f settingsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("format: decode settings: %w", err)
	}
	s := DefaultSettings()
	if f.DateFormats != nil {
		s.DateFormatter = *f.DateFormats
	}
	if f.TrueValues != nil {
		s.TruthFormatter = *f.TrueValues
	}
	if f.FalseValues != nil {
		s.FalseFormatter = *f.FalseValues
	}
	if f.NullValues != nil {
		s.NullFormatter = *f.NullValues
	}
	if f.MultiValueDelimiters != nil {
		s.MultiValueFormatter = *f.MultiValueDelimiters
	}
	if f.CaseSensitive != nil {
		s.CaseSensitive = *f.CaseSensitive
	}
	if f.RemoveExtra != nil {
		b := *f.RemoveExtra
		s.RemoveExtra = &b
	}
	if f.RoundingPrecision != nil {
		if *f.RoundingPrecision < 0 {
			return nil, fmt.Errorf("format: roundingPrecision must not be negative, got %v", *f.RoundingPrecision)
		}
		s.RoundingPrecision = *f.RoundingPrecision
	}
	return s, nil
}
