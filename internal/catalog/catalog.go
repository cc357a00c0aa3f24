// Package catalog holds the static table of known modifier definitions:
// recognition patterns, keyword hints, plausible value ranges, known OCR
// misreads, tier thresholds and item-class affinities.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Range is an inclusive numeric value range.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Correction maps a known OCR misread to its corrected text. Corrections
// are an ordered slice, not a map: substitution order must be stable for
// the fuzzy pass to be deterministic.
type Correction struct {
	Bad  string
	Good string
}

// TierStep is one threshold in a high-to-low tier table: values meeting
// Min or above earn Label, unless a higher step already claimed them.
type TierStep struct {
	Min   float64
	Label string
}

// Definition describes one recognizable modifier.
type Definition struct {
	// Name is the display name reported in matches, e.g. "Life".
	Name string

	// Patterns are tried in order; the first match wins. Every pattern
	// must carry at least one capture group.
	Patterns []*regexp.Regexp

	// Keywords are case-insensitive substrings that corroborate a match.
	Keywords []string

	// ValueRange bounds plausible captured values for this modifier.
	ValueRange Range

	// Corrections are known OCR misreads of this modifier's wording.
	Corrections []Correction

	// Tiers maps numeric values to tier labels, ordered high to low.
	Tiers []TierStep

	// Affinities are item classes this modifier implies; Exclusions are
	// classes it contradicts. Both feed the context validator.
	Affinities []string
	Exclusions []string

	// Reasonable optionally narrows ValueRange per item class.
	Reasonable map[string]Range
}

// Catalog is an ordered set of modifier definitions. Order is significant:
// extraction tests definitions first to last and stops at the first match.
type Catalog struct {
	defs []Definition
}

// New compiles and validates a catalog. A definition with no patterns, or
// a pattern without a capture group, is a fatal configuration error.
func New(specs []Spec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("catalog has no definitions")
	}

	defs := make([]Definition, 0, len(specs))
	for _, spec := range specs {
		def, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", spec.Name, err)
		}
		defs = append(defs, def)
	}
	return &Catalog{defs: defs}, nil
}

// Spec is the uncompiled form of a Definition, with patterns as strings.
type Spec struct {
	Name        string
	Patterns    []string
	Keywords    []string
	ValueRange  Range
	Corrections []Correction
	Tiers       []TierStep
	Affinities  []string
	Exclusions  []string
	Reasonable  map[string]Range
}

func (s Spec) compile() (Definition, error) {
	if s.Name == "" {
		return Definition{}, fmt.Errorf("missing name")
	}
	if len(s.Patterns) == 0 {
		return Definition{}, fmt.Errorf("no patterns")
	}

	patterns := make([]*regexp.Regexp, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Definition{}, fmt.Errorf("pattern %q: %w", p, err)
		}
		if re.NumSubexp() < 1 {
			return Definition{}, fmt.Errorf("pattern %q has no capture group", p)
		}
		patterns = append(patterns, re)
	}

	for i := 1; i < len(s.Tiers); i++ {
		if s.Tiers[i].Min >= s.Tiers[i-1].Min {
			return Definition{}, fmt.Errorf("tier table not ordered high to low at %q", s.Tiers[i].Label)
		}
	}

	return Definition{
		Name:        s.Name,
		Patterns:    patterns,
		Keywords:    s.Keywords,
		ValueRange:  s.ValueRange,
		Corrections: s.Corrections,
		Tiers:       s.Tiers,
		Affinities:  s.Affinities,
		Exclusions:  s.Exclusions,
		Reasonable:  s.Reasonable,
	}, nil
}

// Definitions returns the catalog's definitions in order.
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Find returns the definition with the given name.
func (c *Catalog) Find(name string) (*Definition, bool) {
	for i := range c.defs {
		if c.defs[i].Name == name {
			return &c.defs[i], true
		}
	}
	return nil, false
}

// Corrections returns every correction in catalog order.
func (c *Catalog) Corrections() []Correction {
	var all []Correction
	for i := range c.defs {
		all = append(all, c.defs[i].Corrections...)
	}
	return all
}

// TierFor maps a raw captured value list to a tier label for this
// definition. Returns "" when the value is below every threshold or no
// capture parses as numeric.
func (d *Definition) TierFor(values []string) string {
	v, ok := FirstNumeric(values)
	if !ok {
		return ""
	}
	for _, step := range d.Tiers {
		if v >= step.Min {
			return step.Label
		}
	}
	return ""
}

// FirstNumeric returns the first capture that parses as a number.
func FirstNumeric(values []string) (float64, bool) {
	for _, raw := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}
