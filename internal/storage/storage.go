// Package storage defines the persistence interface for captured chunks.
package storage

import (
	"context"

	"github.com/pagehound/pagehound/internal/models"
)

// Store persists chunks with their metadata and embeddings. It is the
// authoritative record: the dense index is rebuilt from it at startup and
// after ingest, and search results are enriched from it before grouping.
type Store interface {
	// PutChunks upserts chunks in one transaction.
	PutChunks(ctx context.Context, chunks []*models.Chunk) error
	GetChunk(ctx context.Context, id string) (*models.Chunk, error)
	// ListChunks returns all chunks with embeddings, ordered by ID.
	ListChunks(ctx context.Context) ([]*models.Chunk, error)
	// DeleteByURL removes all chunks for a page and returns their IDs.
	DeleteByURL(ctx context.Context, url string) ([]string, error)
	CountChunks(ctx context.Context) (int64, error)
	CountPages(ctx context.Context) (int64, error)
	Close() error
}
