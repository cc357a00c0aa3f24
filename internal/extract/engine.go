package extract

import (
	"fmt"
	"strings"

	"item-scanner/internal/catalog"
	"item-scanner/internal/learning"
	"item-scanner/internal/ocr"
	"item-scanner/internal/preprocess"

	"gocv.io/x/gocv"
)

// Engine runs the full detection pipeline: variant generation, per-variant
// OCR, variant selection, pattern and fuzzy extraction, scoring, tiering
// and learning-store updates. It is stateless per call except for the
// injected learning store.
type Engine struct {
	backend ocr.Backend
	catalog *catalog.Catalog
	store   learning.Store
	weights Weights
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the builtin modifier catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithStore injects a learning store. Defaults to a fresh in-memory store;
// pass a file-backed store to persist outcomes across runs.
func WithStore(s learning.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithWeights overrides the confidence blend weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// New creates an extraction engine. The backend may be nil when only the
// text-based entry point is used.
func New(backend ocr.Backend, opts ...Option) (*Engine, error) {
	e := &Engine{
		backend: backend,
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("builtin catalog: %w", err)
		}
		e.catalog = cat
	}
	if e.store == nil {
		e.store = learning.NewMemoryStore(learning.DefaultCap)
	}
	if err := e.weights.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Extract runs the full pipeline on a tooltip image. All variants are
// evaluated sequentially, the highest-confidence recognition wins, and its
// text is extracted. Total OCR failure is a normal outcome and yields an
// empty list. Each emitted match is recorded as a success outcome in the
// learning store.
func (e *Engine) Extract(img gocv.Mat, itemCtx *Context) []Match {
	if e.backend == nil || img.Empty() {
		return nil
	}

	variants := preprocess.Variants(img)
	defer preprocess.CloseAll(variants)

	results := make([]ocr.Result, 0, len(variants))
	for _, v := range variants {
		results = append(results, ocr.Run(e.backend, v))
	}

	best, ok := ocr.Select(results)
	if !ok {
		fmt.Printf("[Extract] all %d variants failed OCR\n", len(variants))
		return nil
	}

	matches := e.fromText(best.Text, best.Confidence, itemCtx)
	for _, m := range matches {
		e.store.RecordOutcome(m.Name, m.Confidence, best.Technique, best.Quality, learning.OutcomeSuccess)
	}
	return matches
}

// ExtractFromText bypasses the image pipeline and extracts modifiers from
// already-recognized text. ocrConfidence is the aggregate recognition
// confidence in [0,1]. The learning store is read but not updated, so
// repeated calls on the same text are idempotent.
func (e *Engine) ExtractFromText(text string, ocrConfidence float64, itemCtx *Context) []Match {
	return e.fromText(text, ocrConfidence, itemCtx)
}

// LearningStats returns per-modifier aggregate learning statistics.
func (e *Engine) LearningStats() map[string]learning.TypeStats {
	return e.store.Stats()
}

// RecordCorrection feeds a user correction into the learning store.
func (e *Engine) RecordCorrection(rawText string, expected, detected []string) {
	e.store.RecordCorrection(rawText, expected, detected)
}

// fromText scans text line by line: direct pattern pass first, fuzzy
// correction as fallback, then scoring and learned-history bias.
func (e *Engine) fromText(text string, ocrConf float64, itemCtx *Context) []Match {
	stats := e.store.Stats()

	var matches []Match
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if def, values, ok := e.matchLine(line); ok {
			m := e.newMatch(def, line, line, values, 1.0, MethodPattern, ocrConf, itemCtx)
			e.applyHistory(&m, stats)
			matches = append(matches, m)
			continue
		}

		if m, ok := e.fuzzyLine(line, ocrConf, itemCtx); ok {
			e.applyHistory(&m, stats)
			matches = append(matches, m)
		}
	}
	return matches
}

// matchLine tests one line against every definition's patterns in catalog
// order. First definition, first pattern, first match wins.
func (e *Engine) matchLine(line string) (*catalog.Definition, []string, bool) {
	defs := e.catalog.Definitions()
	for i := range defs {
		for _, re := range defs[i].Patterns {
			groups := re.FindStringSubmatch(line)
			if groups == nil {
				continue
			}
			values := make([]string, 0, len(groups)-1)
			for _, g := range groups[1:] {
				if g != "" {
					values = append(values, g)
				}
			}
			return &defs[i], values, true
		}
	}
	return nil, nil, false
}

// newMatch builds a scored match. matchedLine is the line the pattern
// actually matched (the corrected line on the fuzzy path); keyword checks
// run against it while RawText keeps the original recognition.
func (e *Engine) newMatch(def *catalog.Definition, raw, matchedLine string, values []string, sim float64, method Method, ocrConf float64, itemCtx *Context) Match {
	conf := e.score(def, matchedLine, values, ocrConf, itemCtx)
	if method == MethodFuzzy {
		conf = clamp01(conf * sim * fuzzyPenalty)
	}
	return Match{
		Name:       def.Name,
		RawText:    raw,
		Confidence: conf,
		Tier:       def.TierFor(values),
		Values:     values,
		Method:     method,
		Similarity: sim,
	}
}

// applyHistory biases confidence by the modifier's observed success rate.
// The shift is a pure function of the store snapshot, so extraction stays
// deterministic for a fixed store state.
func (e *Engine) applyHistory(m *Match, stats map[string]learning.TypeStats) {
	s, ok := stats[m.Name]
	if !ok || s.Count == 0 {
		return
	}
	adj := (s.SuccessRate - 0.5) * 0.2
	next := clamp01(m.Confidence + adj)
	if next == m.Confidence {
		return
	}
	m.Confidence = next
	m.Method = MethodLearned
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
