// Package match pairs product listings from two sources into unified
// products: pluggable similarity scoring, hard conflict vetoes, and a greedy
// one-to-one assignment.
package match

import (
	"context"
	"sort"

	"github.com/shopsync/shopsync/internal/identify"
	"github.com/shopsync/shopsync/internal/models"
	"go.uber.org/zap"
)

// Matcher pairs listings from two sources into unified products. The primary
// scorer runs first; if it fails (model unavailable, service timeout) the
// lexical fallback takes over so a result is always produced.
type Matcher struct {
	scorer   Scorer
	fallback Scorer
	logger   *zap.Logger
}

// NewMatcher builds a matcher around the given primary scorer. The fallback
// is always the lexical scorer, which cannot fail.
func NewMatcher(scorer Scorer, logger *zap.Logger) *Matcher {
	return &Matcher{
		scorer:   scorer,
		fallback: &LexicalScorer{},
		logger:   logger,
	}
}

// Strategy reports the primary scorer currently in use.
func (m *Matcher) Strategy() string { return m.scorer.Name() }

// Match assigns each amazon listing at most one flipkart partner and returns
// the unified list: matched products first, then amazon-only, then unclaimed
// flipkart listings, renumbered from 1.
//
// Assignment is greedy in amazon order. Each amazon listing claims the
// highest-scoring unclaimed flipkart listing that survives the veto chain and
// clears an acceptance threshold. Greedy means an earlier listing can claim a
// partner a later listing would have scored higher with; in practice titles
// rarely contend for the same partner once vetoes apply, and the single pass
// keeps matching linear in the candidate count.
func (m *Matcher) Match(ctx context.Context, amazon, flipkart []models.Listing) []models.UnifiedProduct {
	if len(amazon) == 0 && len(flipkart) == 0 {
		return []models.UnifiedProduct{}
	}

	titlesA := titles(amazon)
	titlesB := titles(flipkart)

	scorerName := m.scorer.Name()
	matrix, err := m.scorer.ScoreMatrix(ctx, titlesA, titlesB)
	lexical := scorerName == "lexical"
	if err != nil {
		m.logger.Warn("primary scorer failed, degrading to lexical matching",
			zap.String("scorer", scorerName),
			zap.Error(err))
		matrix, _ = m.fallback.ScoreMatrix(ctx, titlesA, titlesB)
		lexical = true
	}

	idsA := extractAll(titlesA)
	idsB := extractAll(titlesB)
	tokensA := tokenizeAll(idsA)
	tokensB := tokenizeAll(idsB)

	claimed := make([]bool, len(flipkart))
	products := make([]models.UnifiedProduct, 0, len(amazon)+len(flipkart))

	for i, a := range amazon {
		bestJ := -1
		var best candidate
		for j := range flipkart {
			if claimed[j] {
				continue
			}
			if vetoed, rule := Veto(idsA[i], idsB[j]); vetoed {
				m.logger.Debug("pair vetoed",
					zap.String("rule", rule),
					zap.String("amazon", titlesA[i]),
					zap.String("flipkart", titlesB[j]))
				continue
			}
			c := scoreCandidate(matrix[i][j], idsA[i], idsB[j], tokensA[i], tokensB[j])
			if !c.accepted(lexical) {
				continue
			}
			if bestJ == -1 || c.combined > best.combined {
				bestJ, best = j, c
			}
		}

		p := unifiedFromAmazon(a)
		if bestJ >= 0 {
			claimed[bestJ] = true
			f := flipkart[bestJ]
			p.FlipkartPrice = f.Price
			p.FlipkartLink = f.Link
			p.HasComparison = true
			p.MatchConfidence = best.confidence()
			if p.Rating == nil {
				p.Rating = f.Rating
			}
			if p.Image == "" {
				p.Image = f.Image
			}
		}
		products = append(products, p)
	}

	for j, f := range flipkart {
		if !claimed[j] {
			products = append(products, unifiedFromFlipkart(f))
		}
	}

	// Matched products lead the list. The sort is stable so each side keeps
	// its original ranking order within its partition.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].HasComparison && !products[j].HasComparison
	})
	for i := range products {
		products[i].ID = i + 1
	}
	return products
}

func titles(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Title
	}
	return out
}

func extractAll(titles []string) []*identify.IdentifierSet {
	out := make([]*identify.IdentifierSet, len(titles))
	for i, t := range titles {
		out[i] = identify.Extract(t)
	}
	return out
}

func tokenizeAll(ids []*identify.IdentifierSet) []map[string]bool {
	out := make([]map[string]bool, len(ids))
	for i, id := range ids {
		out[i] = id.Tokens()
	}
	return out
}

func unifiedFromAmazon(l models.Listing) models.UnifiedProduct {
	return models.UnifiedProduct{
		Title:       l.Title,
		Image:       l.Image,
		Rating:      l.Rating,
		IsPrime:     l.IsPrime,
		AmazonPrice: l.Price,
		AmazonLink:  l.Link,
	}
}

func unifiedFromFlipkart(l models.Listing) models.UnifiedProduct {
	return models.UnifiedProduct{
		Title:         l.Title,
		Image:         l.Image,
		Rating:        l.Rating,
		FlipkartPrice: l.Price,
		FlipkartLink:  l.Link,
	}
}
