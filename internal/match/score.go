package match

import "github.com/shopsync/shopsync/internal/identify"

// Scoring boosts and acceptance thresholds. Boosts apply only to pairs that
// survive the veto chain; an exact model-number intersection is the single
// strongest signal available.
const (
	boostPerSharedIdentifier = 0.05
	boostBrandMatch          = 0.15
	boostModelMatch          = 0.40
	penaltyColorMismatch     = 0.20

	thresholdModelSemantic = 0.40
	thresholdBrandSemantic = 0.55
	minBrandOverlap        = 4
	thresholdSemanticAlone = 0.82

	// The lexical fallback is deterministic but coarse, so its acceptance
	// is anchored: it never accepts on score alone.
	lexicalMinScore   = 0.50
	lexicalMinOverlap = 3
	lexicalBrandBonus = 0.20
	minAIConfidence   = 0.50
)

// candidate is the ephemeral scoring state for one (A, B) pair. It exists
// only while the matcher picks a partner and is never persisted.
type candidate struct {
	semantic   float64
	combined   float64
	overlap    int
	brandMatch bool
	modelMatch bool
}

// scoreCandidate combines the semantic score with identifier-overlap boosts
// and the soft color penalty (a color clash lowers the score but, unlike the
// veto rules, never rejects outright).
func scoreCandidate(semantic float64, a, b *identify.IdentifierSet, tokensA, tokensB map[string]bool) candidate {
	c := candidate{
		semantic:   semantic,
		overlap:    overlapCount(tokensA, tokensB),
		brandMatch: intersects(a.Brands, b.Brands),
		modelMatch: intersects(a.Models, b.Models),
	}
	c.combined = semantic + boostPerSharedIdentifier*float64(c.overlap)
	if c.brandMatch {
		c.combined += boostBrandMatch
	}
	if c.modelMatch {
		c.combined += boostModelMatch
	}
	if len(a.Colors) > 0 && len(b.Colors) > 0 && disjoint(a.Colors, b.Colors) {
		c.combined -= penaltyColorMismatch
	}
	return c
}

// accepted reports whether a surviving candidate clears an acceptance
// threshold. Any one rule qualifies the pair.
func (c candidate) accepted(lexical bool) bool {
	if lexical {
		return (c.modelMatch && c.semantic >= thresholdModelSemantic) ||
			(c.brandMatch && c.overlap >= lexicalMinOverlap && c.semantic >= lexicalMinScore)
	}
	return (c.modelMatch && c.semantic > thresholdModelSemantic) ||
		(c.brandMatch && c.overlap >= minBrandOverlap && c.semantic > thresholdBrandSemantic) ||
		c.semantic > thresholdSemanticAlone
}

// confidence clamps the combined score into [0,1] for the exposed
// match_confidence field.
func (c candidate) confidence() float64 {
	if c.combined > 1 {
		return 1
	}
	if c.combined < 0 {
		return 0
	}
	return c.combined
}
