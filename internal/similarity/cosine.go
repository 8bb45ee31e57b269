// Package similarity computes vector similarity between embeddings.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of different lengths are compared.
// This indicates mismatched embedding models upstream, not missing data.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Cosine returns dot(a,b) / (|a| * |b|).
// Empty inputs and zero-norm inputs yield 0 with no error. Vectors of different
// non-zero lengths yield ErrDimensionMismatch.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// CosineOrZero is Cosine with every non-computable case mapped to 0.
func CosineOrZero(a, b []float32) float64 {
	score, err := Cosine(a, b)
	if err != nil {
		return 0
	}
	return score
}
