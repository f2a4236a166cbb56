// Package embedding provides text embedding via ONNX or an OpenAI-compatible
// API, plus caching.
package embedding

import (
	"context"
	"math"
)

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Valid reports whether v is a usable embedding: non-empty and free of
// NaN or infinite components.
func Valid(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
