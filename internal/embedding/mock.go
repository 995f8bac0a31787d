package embedding

import (
	"context"
	"strings"
)

// MockEmbedder is a deterministic embedder for tests. Each lowercased word of
// the title is hashed into one dimension of the vector, so the cosine
// similarity of two mock embeddings tracks their word overlap: titles sharing
// most words score high, disjoint titles score near zero. The same title
// always gets the same embedding.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder producing deterministic word-hash
// embeddings of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a unit-normalized bag-of-words hash embedding.
func (e *MockEmbedder) Embed(ctx context.Context, title string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, `()[]{},;:.!-+|"'`)
		if word == "" {
			continue
		}
		emb[HashString(word)%e.dimensions] += 1
	}
	normalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each title.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, titles []string) ([][]float32, error) {
	embeddings := make([][]float32, len(titles))
	for i, title := range titles {
		emb, err := e.Embed(ctx, title)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}
