// Package vecmath provides elementary operations on embedding vectors.
package vecmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors (or a vector and an index)
// disagree on dimensionality.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// NormalizeL2 normalizes the vector in place to unit L2 norm.
// A zero vector is left unchanged so that no NaN can leak into scores.
func NormalizeL2(x []float32) {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range x {
		x[i] *= norm
	}
}

// L2Norm returns the Euclidean norm of x.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of a and b. For pre-normalized vectors this
// equals cosine similarity, so no division by magnitudes is needed at query time.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot, nil
}

// IsNormalized reports whether x has unit L2 norm within tol.
func IsNormalized(x []float32, tol float64) bool {
	return math.Abs(L2Norm(x)-1.0) <= tol
}
