// Package learning keeps a bounded history of extraction outcomes per
// modifier type and derives aggregate statistics used to bias confidence.
package learning

import (
	"sync"
	"time"

	"item-scanner/internal/preprocess"

	"gonum.org/v1/gonum/stat"
)

// DefaultCap is the default bound on each per-modifier history sequence.
const DefaultCap = 100

// Outcome classifies one recorded extraction attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Trend classifies recent confidence movement for a modifier type.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendDeclining    Trend = "declining"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// trendWindow and trendMargin control trend classification: the means of
// the two halves of the last trendWindow success samples must differ by
// more than trendMargin to leave "stable".
const (
	trendWindow = 20
	trendMargin = 0.1
)

// Sample is one recorded outcome.
type Sample struct {
	Timestamp  time.Time            `json:"timestamp"`
	Confidence float64              `json:"confidence"`
	Technique  preprocess.Technique `json:"technique"`
	Quality    float64              `json:"quality"`
}

// Correction is one user-supplied correction of an extraction result.
type Correction struct {
	Timestamp time.Time `json:"timestamp"`
	RawText   string    `json:"raw_text"`
	Expected  []string  `json:"expected"`
	Detected  []string  `json:"detected"`
	Accuracy  float64   `json:"accuracy"`
}

// TypeStats are the read-only aggregates exposed per modifier type.
type TypeStats struct {
	Count       int     `json:"count"`
	SuccessRate float64 `json:"success_rate"`
	Trend       Trend   `json:"confidence_trend"`
}

// Store is the learning-store contract. Implementations must serialize
// mutations so FIFO eviction stays correct under concurrent callers.
type Store interface {
	RecordOutcome(modifier string, confidence float64, technique preprocess.Technique, quality float64, outcome Outcome)
	RecordCorrection(rawText string, expected, detected []string)
	Stats() map[string]TypeStats
}

// history holds the four bounded sequences for one modifier type.
type history struct {
	Successes   []Sample     `json:"successes"`
	Failures    []Sample     `json:"failures"`
	Corrections []Correction `json:"corrections"`
	Calibration []Sample     `json:"calibration"`
}

// MemoryStore is the default in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	cap       int
	histories map[string]*history
}

// NewMemoryStore creates an in-memory store. A non-positive cap falls back
// to DefaultCap.
func NewMemoryStore(cap int) *MemoryStore {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &MemoryStore{
		cap:       cap,
		histories: make(map[string]*history),
	}
}

// RecordOutcome appends one outcome sample. Every outcome also feeds the
// calibration sequence, which pairs predicted confidence with eventual
// success or failure for later recalibration.
func (s *MemoryStore) RecordOutcome(modifier string, confidence float64, technique preprocess.Technique, quality float64, outcome Outcome) {
	sample := Sample{
		Timestamp:  time.Now(),
		Confidence: confidence,
		Technique:  technique,
		Quality:    quality,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.historyFor(modifier)
	if outcome == OutcomeFailure {
		h.Failures = appendBounded(h.Failures, sample, s.cap)
	} else {
		h.Successes = appendBounded(h.Successes, sample, s.cap)
	}
	h.Calibration = appendBounded(h.Calibration, sample, s.cap)
}

// RecordCorrection stores a user correction under every expected modifier
// type, with the overlap between expected and detected as its accuracy.
func (s *MemoryStore) RecordCorrection(rawText string, expected, detected []string) {
	corr := Correction{
		Timestamp: time.Now(),
		RawText:   rawText,
		Expected:  append([]string(nil), expected...),
		Detected:  append([]string(nil), detected...),
		Accuracy:  overlapRatio(expected, detected),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, modifier := range expected {
		h := s.historyFor(modifier)
		h.Corrections = appendBoundedCorrection(h.Corrections, corr, s.cap)
	}
}

// Stats returns aggregates for every modifier type seen so far.
func (s *MemoryStore) Stats() map[string]TypeStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]TypeStats, len(s.histories))
	for modifier, h := range s.histories {
		out[modifier] = h.stats()
	}
	return out
}

func (s *MemoryStore) historyFor(modifier string) *history {
	h, ok := s.histories[modifier]
	if !ok {
		h = &history{}
		s.histories[modifier] = h
	}
	return h
}

func (h *history) stats() TypeStats {
	succ := len(h.Successes)
	fail := len(h.Failures)

	rate := 0.0
	if succ+fail > 0 {
		rate = float64(succ) / float64(succ+fail)
	}

	return TypeStats{
		Count:       succ + fail,
		SuccessRate: rate,
		Trend:       trendOf(h.Successes),
	}
}

// trendOf compares mean confidence across the two halves of the most
// recent success samples.
func trendOf(successes []Sample) Trend {
	recent := successes
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	if len(recent) < 2 {
		return TrendInsufficient
	}

	confidences := make([]float64, len(recent))
	for i, s := range recent {
		confidences[i] = s.Confidence
	}

	half := len(confidences) / 2
	first := stat.Mean(confidences[:half], nil)
	second := stat.Mean(confidences[half:], nil)

	switch {
	case second > first+trendMargin:
		return TrendImproving
	case second < first-trendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// appendBounded appends and evicts the oldest entries past cap (FIFO).
func appendBounded(seq []Sample, s Sample, cap int) []Sample {
	seq = append(seq, s)
	if len(seq) > cap {
		seq = seq[len(seq)-cap:]
	}
	return seq
}

func appendBoundedCorrection(seq []Correction, c Correction, cap int) []Correction {
	seq = append(seq, c)
	if len(seq) > cap {
		seq = seq[len(seq)-cap:]
	}
	return seq
}

// overlapRatio is |expected ∩ detected| / max(|expected|, 1).
func overlapRatio(expected, detected []string) float64 {
	if len(expected) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(detected))
	for _, d := range detected {
		set[d] = struct{}{}
	}
	hits := 0
	for _, e := range expected {
		if _, ok := set[e]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(expected))
}
