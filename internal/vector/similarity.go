// Package vector provides the per-document in-memory vector index and
// the similarity math used to rank passages.
package vector

import "math"

// Cosine calculates the cosine similarity between two vectors.
// Returns a value in [-1, 1], where 1 means identical direction.
// Defined as 0 when the vectors differ in length, are empty, or either
// has zero norm (avoids division by zero).
//
// Formula: cos(θ) = (A · B) / (||A|| × ||B||)
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
