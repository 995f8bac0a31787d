// Package embedding provides sentence embedding of product titles via ONNX,
// with an LRU cache and a deterministic mock for tests.
package embedding

import "context"

// Embedder produces vector embeddings for product titles. EmbedBatch is the
// hot path: the matcher encodes each source's titles in one batched call and
// never re-encodes per pair. Implementations must return unit-normalized
// vectors of a fixed dimensionality and be safe for concurrent use after
// construction.
type Embedder interface {
	Embed(ctx context.Context, title string) ([]float32, error)
	EmbedBatch(ctx context.Context, titles []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
