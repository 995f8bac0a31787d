// Package vector provides similarity helpers for normalized embeddings.
package vector

import "math"

// InnerProduct returns the inner product of two vectors; for unit-normalized
// vectors this equals cosine similarity. Mismatched or empty vectors score 0.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

// CosineMatrix computes the full pairwise similarity matrix between two sides
// of embeddings in one pass: out[i][j] = InnerProduct(a[i], b[j]), clamped to
// [0, 1]. This is the performance-critical path of embedding-based matching;
// each side is encoded once and every pair is scored from the matrix.
func CosineMatrix(a, b [][]float32) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, len(b))
		for j := range b {
			s := InnerProduct(a[i], b[j])
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			row[j] = s
		}
		out[i] = row
	}
	return out
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}
