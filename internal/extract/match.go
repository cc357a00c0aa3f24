// Package extract turns OCR text into recognized item modifiers with
// calibrated confidence scores.
package extract

// Method tags how a match was produced. The set is closed: direct pattern
// match, fuzzy match after misread correction, or a match whose confidence
// was re-biased by learned history.
type Method string

const (
	MethodPattern Method = "pattern"
	MethodFuzzy   Method = "fuzzy"
	MethodLearned Method = "ml_enhanced"
)

// Match is one recognized modifier from a tooltip.
type Match struct {
	// Name is the catalog display name, e.g. "Life".
	Name string

	// RawText is the tooltip line the match came from, as recognized.
	RawText string

	// Confidence is the blended trust score in [0,1].
	Confidence float64

	// Tier is the estimated quality bucket ("T1".."T5"), empty when the
	// value is below every threshold or could not be parsed.
	Tier string

	// Values holds the raw captured groups in pattern order. Entries may
	// be numeric ("73") or categorical ("fire").
	Values []string

	// Method records which extraction route produced the match.
	Method Method

	// Similarity is 1.0 for direct matches; for fuzzy matches it is the
	// normalized edit-distance similarity between the original line and
	// its corrected form.
	Similarity float64
}

// Context carries optional caller-supplied hints about the scanned item.
type Context struct {
	// ItemType is a free-text item category like "weapon" or "ring".
	ItemType string
}
