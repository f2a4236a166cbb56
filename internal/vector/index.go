// Package vector provides the in-memory dense index over normalized chunk embeddings.
package vector

import (
	"context"
	"fmt"
	"sort"

	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/pkg/vecmath"
)

// Hit is a single dense search result. Score is the cosine similarity of the
// normalized query against the chunk embedding, bounded to [-1,1].
type Hit struct {
	ChunkID string
	URL     string
	Score   float64
}

// Index is an immutable brute-force inner-product index. Embeddings are stored
// contiguously for cache-friendly scanning. The index is read-only after Build,
// so concurrent searches need no locking; updates are a rebuild plus an atomic
// swap of the reference held by the caller.
type Index struct {
	dimensions int
	ids        []string
	urls       []string
	data       []float32 // len(ids) * dimensions
}

// Builder accumulates chunks for an Index.
type Builder struct {
	dimensions int
	ids        []string
	urls       []string
	data       []float32
}

// NewBuilder creates a builder for embeddings of the given dimensionality.
func NewBuilder(dimensions int) (*Builder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	return &Builder{dimensions: dimensions}, nil
}

// Add appends one chunk's embedding. The embedding must already be L2-normalized.
func (b *Builder) Add(id, url string, embedding []float32) error {
	if len(embedding) != b.dimensions {
		return fmt.Errorf("%w: embedding for %q has %d dimensions, index expects %d",
			vecmath.ErrDimensionMismatch, id, len(embedding), b.dimensions)
	}
	b.ids = append(b.ids, id)
	b.urls = append(b.urls, url)
	b.data = append(b.data, embedding...)
	return nil
}

// Build returns the immutable index. The builder must not be reused afterwards.
func (b *Builder) Build() *Index {
	return &Index{
		dimensions: b.dimensions,
		ids:        b.ids,
		urls:       b.urls,
		data:       b.data,
	}
}

// BuildIndex constructs an index directly from a chunk list.
func BuildIndex(dimensions int, chunks []*models.Chunk) (*Index, error) {
	b, err := NewBuilder(dimensions)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if err := b.Add(c.ID, c.URL, c.Embedding); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Search scans every stored embedding against the normalized query vector and
// returns the k highest-scoring chunks. Ordering is score descending with
// chunk ID ascending as tie-break, so repeated calls against the same index
// return byte-identical orderings.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]*Hit, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			vecmath.ErrDimensionMismatch, len(query), ix.dimensions)
	}
	if k <= 0 || len(ix.ids) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hits := make([]*Hit, len(ix.ids))
	for i := range ix.ids {
		row := ix.data[i*ix.dimensions : (i+1)*ix.dimensions]
		var dot float64
		for j, q := range query {
			dot += float64(q) * float64(row[j])
		}
		hits[i] = &Hit{ChunkID: ix.ids[i], URL: ix.urls[i], Score: dot}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of indexed chunks.
func (ix *Index) Size() int {
	return len(ix.ids)
}

// Dimensions returns the embedding dimensionality of the index.
func (ix *Index) Dimensions() int {
	return ix.dimensions
}
