package extract

import (
	"strings"

	"item-scanner/internal/catalog"
)

// fuzzyPenalty discounts matches that only succeeded after misread
// correction; corrected text is inherently less trustworthy.
const fuzzyPenalty = 0.7

// fuzzyLine is the fallback for lines no pattern matched directly: apply
// every known misread substitution in catalog order, retry the pattern
// pass on the corrected line, and penalize by how far the line had to move.
func (e *Engine) fuzzyLine(line string, ocrConf float64, itemCtx *Context) (Match, bool) {
	lower := strings.ToLower(line)
	corrected := applyCorrections(lower, e.catalog.Corrections())

	def, values, ok := e.matchLine(corrected)
	if !ok {
		return Match{}, false
	}

	sim := similarity(lower, corrected)
	return e.newMatch(def, line, corrected, values, sim, MethodFuzzy, ocrConf, itemCtx), true
}

// applyCorrections rewrites text with each substitution in order.
func applyCorrections(text string, corrections []catalog.Correction) string {
	for _, c := range corrections {
		text = strings.ReplaceAll(text, c.Bad, c.Good)
	}
	return text
}

// similarity is a normalized edit-distance metric between the original and
// corrected line: 1 - dist/max(len). Two empty strings are identical; one
// empty string is maximally distant.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return clamp01(1.0 - float64(dist)/float64(maxLen))
}

// levenshtein computes the edit distance between two strings with the
// standard two-row dynamic program.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
