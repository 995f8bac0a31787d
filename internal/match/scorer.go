package match

import (
	"context"
	"fmt"

	"github.com/shopsync/shopsync/internal/embedding"
	"github.com/shopsync/shopsync/internal/identify"
	"github.com/shopsync/shopsync/internal/vector"
)

// Scorer computes the semantic closeness matrix between two title lists:
// out[i][j] in [0,1] is the score of (titlesA[i], titlesB[j]). Strategies are
// interchangeable behind this interface and selectable per request.
type Scorer interface {
	Name() string
	ScoreMatrix(ctx context.Context, titlesA, titlesB []string) ([][]float64, error)
}

// EmbeddingScorer scores pairs by cosine similarity of sentence embeddings.
// Each side is encoded in one batched call and the full pairwise matrix is
// computed once; nothing is re-encoded per pair.
type EmbeddingScorer struct {
	embedder embedding.Embedder
}

// NewEmbeddingScorer wraps an embedder. The embedder handle is an explicit
// dependency: it carries the one-time model initialization cost and is safe
// to share across concurrent invocations.
func NewEmbeddingScorer(e embedding.Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: e}
}

// Name identifies the strategy in logs and responses.
func (s *EmbeddingScorer) Name() string { return "embedding" }

// ScoreMatrix encodes both sides and returns their cosine matrix.
func (s *EmbeddingScorer) ScoreMatrix(ctx context.Context, titlesA, titlesB []string) ([][]float64, error) {
	embsA, err := s.embedder.EmbedBatch(ctx, titlesA)
	if err != nil {
		return nil, fmt.Errorf("encoding source A titles: %w", err)
	}
	embsB, err := s.embedder.EmbedBatch(ctx, titlesB)
	if err != nil {
		return nil, fmt.Errorf("encoding source B titles: %w", err)
	}
	return vector.CosineMatrix(embsA, embsB), nil
}

// Weights of the two lexical signals. Identifier tokens carry more weight
// than the raw word bag because they survive marketing filler and reordering.
const (
	lexicalIdentWeight = 0.6
	lexicalWordWeight  = 0.4
)

// LexicalScorer is the lightweight deterministic fallback. It blends Jaccard
// similarity of the extracted identifier token sets with Jaccard similarity
// of the normalized title word bags, plus a flat bonus when the pair shares
// a recognized brand. It never errors.
type LexicalScorer struct{}

// Name identifies the strategy in logs and responses.
func (s *LexicalScorer) Name() string { return "lexical" }

type lexicalSide struct {
	ids    *identify.IdentifierSet
	tokens map[string]bool
	words  map[string]bool
}

func lexicalSides(titles []string) []lexicalSide {
	sides := make([]lexicalSide, len(titles))
	for i, t := range titles {
		ids := identify.Extract(t)
		sides[i] = lexicalSide{
			ids:    ids,
			tokens: ids.Tokens(),
			words:  identify.WordSet(identify.Normalize(t)),
		}
	}
	return sides
}

// ScoreMatrix computes the blended lexical score for every pair.
func (s *LexicalScorer) ScoreMatrix(ctx context.Context, titlesA, titlesB []string) ([][]float64, error) {
	sidesA := lexicalSides(titlesA)
	sidesB := lexicalSides(titlesB)

	out := make([][]float64, len(titlesA))
	for i := range titlesA {
		row := make([]float64, len(titlesB))
		for j := range titlesB {
			a, b := sidesA[i], sidesB[j]
			score := lexicalIdentWeight*jaccard(a.tokens, b.tokens) +
				lexicalWordWeight*jaccard(a.words, b.words)
			if intersects(a.ids.Brands, b.ids.Brands) {
				score += lexicalBrandBonus
			}
			if score > 1 {
				score = 1
			}
			row[j] = score
		}
		out[i] = row
	}
	return out, nil
}

func jaccard(a, b map[string]bool) float64 {
	inter := overlapCount(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
