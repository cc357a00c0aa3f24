package extract

import (
	"fmt"
	"math"
	"strings"

	"item-scanner/internal/catalog"
)

// Weights are the fixed confidence blend weights. They must sum to 1.
type Weights struct {
	Pattern    float64 // pattern-match strength
	ValueRange float64 // value-range plausibility
	Keyword    float64 // keyword presence
	OCR        float64 // raw OCR confidence
	Context    float64 // contextual coherence
}

// DefaultWeights returns the calibrated production blend.
func DefaultWeights() Weights {
	return Weights{
		Pattern:    0.30,
		ValueRange: 0.20,
		Keyword:    0.15,
		OCR:        0.20,
		Context:    0.15,
	}
}

func (w Weights) validate() error {
	sum := w.Pattern + w.ValueRange + w.Keyword + w.OCR + w.Context
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("confidence weights sum to %.4f, want 1.0", sum)
	}
	for _, v := range []float64{w.Pattern, w.ValueRange, w.Keyword, w.OCR, w.Context} {
		if v < 0 {
			return fmt.Errorf("confidence weight %.4f is negative", v)
		}
	}
	return nil
}

// score blends the five sub-scores into one confidence value.
//
// The pattern-strength and value-plausibility axes both derive from the
// same in-range check: an out-of-range numeric capture is the single
// strongest misread indicator, so it deliberately informs both axes.
// A pattern match is never scored zero - even an implausible value is
// still signal.
func (e *Engine) score(def *catalog.Definition, line string, values []string, ocrConf float64, itemCtx *Context) float64 {
	value, parsed := catalog.FirstNumeric(values)

	rangeScore := 0.5
	if parsed && def.ValueRange.Contains(value) {
		rangeScore = 1.0
	}

	w := e.weights
	s := rangeScore*w.Pattern +
		rangeScore*w.ValueRange +
		keywordScore(def.Keywords, line)*w.Keyword +
		clamp01(ocrConf)*w.OCR +
		coherence(def, itemCtx, value, parsed)*w.Context

	return clamp01(s)
}

// keywordScore is the fraction of the definition's keywords present in the
// line, shifted so a lone keyword hit still counts. Floors at 0.5: missing
// keywords weaken a match but do not kill it.
func keywordScore(keywords []string, line string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}

	lower := strings.ToLower(line)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}
	if found == 0 {
		return 0.5
	}
	return math.Min(1.0, float64(found)/float64(len(keywords))+0.5)
}
