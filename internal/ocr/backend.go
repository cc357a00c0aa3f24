// Package ocr adapts an external OCR backend to the extraction pipeline.
package ocr

import (
	"time"

	"item-scanner/internal/preprocess"
	"item-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// Token is a single recognized word with its position and confidence on
// the backend's native 0-100 scale.
type Token struct {
	Text       string
	Confidence float64
	Bounds     geometry.RectInt
}

// Backend is the narrow contract an OCR provider must satisfy. The default
// implementation wraps Tesseract; tests supply deterministic fakes.
type Backend interface {
	Recognize(img gocv.Mat) (text string, tokens []Token, err error)
	Close() error
}

// Result is the recognition outcome for one image variant.
type Result struct {
	Text       string
	Confidence float64 // aggregate token confidence, normalized to [0,1]
	Bounds     geometry.RectInt
	Technique  preprocess.Technique
	Elapsed    time.Duration
	Quality    float64
}

// Failed reports whether the variant produced no usable recognition.
func (r Result) Failed() bool {
	return r.Text == "" || r.Confidence <= 0
}

// Run recognizes one variant. A backend error yields a zero-confidence
// empty result rather than propagating, so the selector still has the
// other variants to consider.
func Run(b Backend, v preprocess.Variant) Result {
	start := time.Now()

	text, tokens, err := b.Recognize(v.Image)
	if err != nil {
		return Result{Technique: v.Technique, Elapsed: time.Since(start)}
	}

	// Mean of positive-confidence tokens only; non-positive tokens are
	// background noise Tesseract could not commit to.
	var sum float64
	var bounds geometry.RectInt
	count := 0
	for _, tok := range tokens {
		if tok.Confidence <= 0 {
			continue
		}
		sum += tok.Confidence
		bounds = bounds.Union(tok.Bounds)
		count++
	}

	confidence := 0.0
	if count > 0 {
		confidence = sum / float64(count) / 100.0
	}

	return Result{
		Text:       text,
		Confidence: confidence,
		Bounds:     bounds,
		Technique:  v.Technique,
		Elapsed:    time.Since(start),
		Quality:    preprocess.QualityScore(v.Image),
	}
}

// Select picks the result with the highest aggregate confidence. Ties keep
// the earliest variant so selection is deterministic. Returns false when
// every variant failed.
func Select(results []Result) (Result, bool) {
	best := Result{}
	found := false
	for _, r := range results {
		if r.Failed() {
			continue
		}
		if !found || r.Confidence > best.Confidence {
			best = r
			found = true
		}
	}
	return best, found
}
