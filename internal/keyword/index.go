// Package keyword provides the lexical (sparse) side of hybrid search.
package keyword

import (
	"context"

	"github.com/pagehound/pagehound/internal/models"
)

// Hit is a single lexical match. Score is the raw relevance value produced by
// the underlying full-text library: non-negative, no fixed upper bound, and
// only comparable within one query's result set.
type Hit struct {
	ChunkID string
	URL     string
	Score   float64
}

// Index defines lexical indexing and search over chunks.
type Index interface {
	Index(ctx context.Context, chunk *models.Chunk) error
	IndexBatch(ctx context.Context, chunks []*models.Chunk) error
	Search(ctx context.Context, query string, limit int) ([]*Hit, error)
	Delete(ctx context.Context, id string) error
	// DocCount returns the total number of chunks in the index.
	DocCount() (uint64, error)
	Close() error
}
