package extract

import (
	"reflect"
	"testing"

	"item-scanner/internal/learning"
	"item-scanner/internal/preprocess"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(nil, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return engine
}

func TestExtractLifeModifier(t *testing.T) {
	engine := newTestEngine(t)

	matches := engine.ExtractFromText("+73 to maximum Life", 0.9, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.Name != "Life" {
		t.Errorf("Name = %q, want Life", m.Name)
	}
	if len(m.Values) != 1 || m.Values[0] != "73" {
		t.Errorf("Values = %v, want [73]", m.Values)
	}
	if m.Method != MethodPattern {
		t.Errorf("Method = %q, want %q", m.Method, MethodPattern)
	}
	if m.Confidence <= 0.8 {
		t.Errorf("Confidence = %.3f, want > 0.8", m.Confidence)
	}
	if m.Tier != "T4" {
		t.Errorf("Tier = %q, want T4", m.Tier)
	}
	if m.Similarity != 1.0 {
		t.Errorf("Similarity = %.3f, want 1.0", m.Similarity)
	}
}

func TestExtractFuzzyCorrection(t *testing.T) {
	engine := newTestEngine(t)

	matches := engine.ExtractFromText("11fe 45", 0.9, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.Name != "Life" {
		t.Errorf("Name = %q, want Life", m.Name)
	}
	if m.Method != MethodFuzzy {
		t.Errorf("Method = %q, want %q", m.Method, MethodFuzzy)
	}
	if m.RawText != "11fe 45" {
		t.Errorf("RawText = %q, want original line", m.RawText)
	}
	if m.Similarity <= 0 || m.Similarity >= 1 {
		t.Errorf("Similarity = %.3f, want in (0,1)", m.Similarity)
	}

	direct := engine.ExtractFromText("life 45", 0.9, nil)
	if len(direct) != 1 {
		t.Fatalf("direct match: got %d matches, want 1", len(direct))
	}
	if m.Confidence >= direct[0].Confidence {
		t.Errorf("fuzzy confidence %.3f not below direct confidence %.3f",
			m.Confidence, direct[0].Confidence)
	}
}

func TestExtractNoiseYieldsNothing(t *testing.T) {
	engine := newTestEngine(t)

	for _, text := range []string{
		"",
		"\n\n\n",
		"zzz qqq ###",
		"the quick brown fox",
	} {
		if matches := engine.ExtractFromText(text, 0.9, nil); len(matches) != 0 {
			t.Errorf("text %q: got %d matches, want 0", text, len(matches))
		}
	}
}

func TestContextHintRaisesConfidence(t *testing.T) {
	engine := newTestEngine(t)
	text := "14% increased Attack Speed"

	without := engine.ExtractFromText(text, 0.9, nil)
	with := engine.ExtractFromText(text, 0.9, &Context{ItemType: "weapon"})
	if len(without) != 1 || len(with) != 1 {
		t.Fatalf("got %d/%d matches, want 1/1", len(without), len(with))
	}
	if with[0].Confidence <= without[0].Confidence {
		t.Errorf("weapon hint: confidence %.3f not above hintless %.3f",
			with[0].Confidence, without[0].Confidence)
	}
}

func TestContextExclusionLowersConfidence(t *testing.T) {
	engine := newTestEngine(t)
	text := "+55 to maximum Energy Shield"

	without := engine.ExtractFromText(text, 0.9, nil)
	with := engine.ExtractFromText(text, 0.9, &Context{ItemType: "weapon"})
	if len(without) != 1 || len(with) != 1 {
		t.Fatalf("got %d/%d matches, want 1/1", len(without), len(with))
	}
	if with[0].Confidence >= without[0].Confidence {
		t.Errorf("weapon hint on armour affix: confidence %.3f not below hintless %.3f",
			with[0].Confidence, without[0].Confidence)
	}
}

func TestExtractionIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	text := "+73 to maximum Life\n+42% to Fire Resistance\n11fe 45"

	first := engine.ExtractFromText(text, 0.85, &Context{ItemType: "ring"})
	second := engine.ExtractFromText(text, 0.85, &Context{ItemType: "ring"})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestConfidenceAlwaysWithinBounds(t *testing.T) {
	engine := newTestEngine(t)

	texts := []string{
		"+73 to maximum Life",
		"+99999 to maximum Life",
		"11fe 45",
		"Adds 12 to 24 Physical Damage",
		"+42% to Fire Resistance",
	}
	confs := []float64{0, 0.5, 1.0, 2.5, -1}

	for _, text := range texts {
		for _, conf := range confs {
			for _, ctx := range []*Context{nil, {ItemType: "weapon"}, {ItemType: "ring"}} {
				for _, m := range engine.ExtractFromText(text, conf, ctx) {
					if m.Confidence < 0 || m.Confidence > 1 {
						t.Errorf("text %q conf %v: confidence %.3f out of [0,1]",
							text, conf, m.Confidence)
					}
				}
			}
		}
	}
}

func TestOutOfRangeValueStillMatches(t *testing.T) {
	engine := newTestEngine(t)

	matches := engine.ExtractFromText("+99999 to maximum Life", 0.9, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	inRange := engine.ExtractFromText("+73 to maximum Life", 0.9, nil)
	if matches[0].Confidence >= inRange[0].Confidence {
		t.Errorf("out-of-range confidence %.3f not below in-range %.3f",
			matches[0].Confidence, inRange[0].Confidence)
	}
	if matches[0].Confidence <= 0 {
		t.Error("out-of-range value drove confidence to zero")
	}
}

func TestResistanceKeepsCategoricalCapture(t *testing.T) {
	engine := newTestEngine(t)

	matches := engine.ExtractFromText("+42% to Fire Resistance", 0.9, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if want := []string{"42", "Fire"}; !reflect.DeepEqual(matches[0].Values, want) {
		t.Errorf("Values = %v, want %v", matches[0].Values, want)
	}
}

func TestFirstCatalogMatchWinsPerLine(t *testing.T) {
	engine := newTestEngine(t)

	// A line matching both Life and the generic trailing-number patterns
	// must resolve to the first catalog definition only.
	matches := engine.ExtractFromText("+73 to maximum Life", 0.9, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want exactly 1", len(matches))
	}
}

func TestLearnedHistoryBiasesConfidence(t *testing.T) {
	store := learning.NewMemoryStore(0)
	for i := 0; i < 5; i++ {
		store.RecordOutcome("Life", 0.9, preprocess.TechniqueAdaptiveThreshold, 0.8, learning.OutcomeSuccess)
	}

	engine := newTestEngine(t, WithStore(store))
	biased := engine.ExtractFromText("+73 to maximum Life", 0.9, nil)
	if len(biased) != 1 {
		t.Fatalf("got %d matches, want 1", len(biased))
	}

	baseline := newTestEngine(t).ExtractFromText("+73 to maximum Life", 0.9, nil)
	if biased[0].Confidence <= baseline[0].Confidence {
		t.Errorf("all-success history: confidence %.3f not above baseline %.3f",
			biased[0].Confidence, baseline[0].Confidence)
	}
	if biased[0].Method != MethodLearned {
		t.Errorf("Method = %q, want %q", biased[0].Method, MethodLearned)
	}
}

func TestClampedHistoryBiasKeepsMethod(t *testing.T) {
	store := learning.NewMemoryStore(0)
	for i := 0; i < 5; i++ {
		store.RecordOutcome("Life", 0.9, preprocess.TechniqueAdaptiveThreshold, 0.8, learning.OutcomeSuccess)
	}

	// All weight on the OCR axis pins the pre-bias confidence at 1.0, so
	// the positive history shift clamps into a no-op and must not retag.
	engine := newTestEngine(t, WithStore(store), WithWeights(Weights{OCR: 1}))
	matches := engine.ExtractFromText("+73 to maximum Life", 1.0, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", matches[0].Confidence)
	}
	if matches[0].Method != MethodPattern {
		t.Errorf("Method = %q, want %q", matches[0].Method, MethodPattern)
	}
}

func TestTextExtractionDoesNotMutateStore(t *testing.T) {
	store := learning.NewMemoryStore(0)
	engine := newTestEngine(t, WithStore(store))

	engine.ExtractFromText("+73 to maximum Life", 0.9, nil)
	if stats := store.Stats(); len(stats) != 0 {
		t.Errorf("text-only extraction recorded outcomes: %+v", stats)
	}
}

func TestRecordCorrectionReachesStore(t *testing.T) {
	store := learning.NewMemoryStore(0)
	engine := newTestEngine(t, WithStore(store))

	engine.RecordCorrection("+73 to maximum Life", []string{"Life"}, nil)
	stats := engine.LearningStats()
	if _, ok := stats["Life"]; !ok {
		t.Errorf("correction not visible in stats: %+v", stats)
	}
}

func TestWeightsMustSumToOne(t *testing.T) {
	_, err := New(nil, WithWeights(Weights{Pattern: 0.5, ValueRange: 0.5, Keyword: 0.5}))
	if err == nil {
		t.Fatal("expected error for weights not summing to 1")
	}
}
