package extract

import (
	"sort"
	"strings"

	"item-scanner/internal/catalog"
)

const (
	coherenceNeutral = 0.5
	contextStep      = 0.15
	coherenceFloor   = 0.05
)

// coherence scores how well the modifier fits the caller-supplied item
// category. No hint contributes a neutral default rather than zero, so an
// absent hint never penalizes confidence. With a hint, affinity raises and
// exclusion lowers the score by a fixed step, and the definition's
// per-item-class reasonable range adds a smaller positive adjustment -
// larger when the value sits inside the narrow range. Context alone can
// never drive a modifier to zero.
func coherence(def *catalog.Definition, itemCtx *Context, value float64, parsed bool) float64 {
	if itemCtx == nil {
		return coherenceNeutral
	}
	hint := strings.ToLower(strings.TrimSpace(itemCtx.ItemType))
	if hint == "" {
		return coherenceNeutral
	}

	score := coherenceNeutral
	switch {
	case matchesAny(hint, def.Affinities):
		score += contextStep
	case matchesAny(hint, def.Exclusions):
		score -= contextStep
	}

	if parsed {
		if narrow, ok := reasonableFor(def, hint); ok {
			if narrow.Contains(value) {
				score += 0.10
			} else {
				score += 0.05
			}
		}
	}

	if score < coherenceFloor {
		return coherenceFloor
	}
	return clamp01(score)
}

// matchesAny reports whether the hint and any term contain each other.
// Substring matching in both directions lets "one handed sword" hit the
// "sword" affinity and "ring" hit an "amethyst ring" hint.
func matchesAny(hint string, terms []string) bool {
	for _, term := range terms {
		t := strings.ToLower(term)
		if strings.Contains(hint, t) || strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

// reasonableFor finds the definition's narrow plausibility range for the
// hinted item class, if one is configured. Classes are scanned in sorted
// order so a hint matching several classes resolves the same way every run.
func reasonableFor(def *catalog.Definition, hint string) (catalog.Range, bool) {
	classes := make([]string, 0, len(def.Reasonable))
	for class := range def.Reasonable {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	for _, class := range classes {
		c := strings.ToLower(class)
		if strings.Contains(hint, c) || strings.Contains(c, hint) {
			return def.Reasonable[class], true
		}
	}
	return catalog.Range{}, false
}
