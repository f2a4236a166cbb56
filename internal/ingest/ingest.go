// Package ingest indexes captured page chunks into the store and both indexes.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pagehound/pagehound/internal/embedding"
	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/search"
	"github.com/pagehound/pagehound/internal/storage"
	"github.com/pagehound/pagehound/internal/vector"
	"github.com/pagehound/pagehound/pkg/vecmath"
)

// Ingester persists submitted chunks, indexes them lexically, and rebuilds the
// dense index. The rebuilt index is swapped into the engine atomically, so
// in-flight searches keep their snapshot.
type Ingester struct {
	store        storage.Store
	embedder     embedding.Embedder
	sparse       keyword.Index
	engine       *search.Engine
	dimensions   int
	snapshotPath string
	logger       *zap.Logger
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithSnapshotPath enables dense index snapshots at path after each rebuild.
func WithSnapshotPath(path string) IngesterOption {
	return func(i *Ingester) { i.snapshotPath = path }
}

// NewIngester creates an ingester with the given dependencies.
func NewIngester(
	store storage.Store,
	embedder embedding.Embedder,
	sparse keyword.Index,
	engine *search.Engine,
	dimensions int,
	logger *zap.Logger,
	opts ...IngesterOption,
) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	ing := &Ingester{
		store:      store,
		embedder:   embedder,
		sparse:     sparse,
		engine:     engine,
		dimensions: dimensions,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestChunks validates, embeds, persists, and indexes a batch. IDs are
// assigned where missing. Returns the number of chunks indexed.
func (i *Ingester) IngestChunks(ctx context.Context, inputs []*models.ChunkInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}
	chunks := make([]*models.Chunk, 0, len(inputs))
	var toEmbed []int
	for _, in := range inputs {
		if in.URL == "" {
			return 0, fmt.Errorf("chunk is missing url")
		}
		if in.Text == "" && len(in.Embedding) == 0 {
			return 0, fmt.Errorf("chunk for %s has neither text nor embedding", in.URL)
		}
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		chunk := &models.Chunk{
			ID:    id,
			URL:   in.URL,
			Title: in.Title,
			Text:  in.Text,
		}
		if len(in.Embedding) > 0 {
			if len(in.Embedding) != i.dimensions {
				return 0, fmt.Errorf("%w: chunk %s embedding has %d dimensions, expected %d",
					vecmath.ErrDimensionMismatch, id, len(in.Embedding), i.dimensions)
			}
			emb := make([]float32, len(in.Embedding))
			copy(emb, in.Embedding)
			vecmath.NormalizeL2(emb)
			chunk.Embedding = emb
		} else {
			toEmbed = append(toEmbed, len(chunks))
		}
		chunks = append(chunks, chunk)
	}

	if len(toEmbed) > 0 {
		texts := make([]string, len(toEmbed))
		for n, idx := range toEmbed {
			texts[n] = chunks[idx].Text
		}
		embeddings, err := i.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embedding chunks: %w", err)
		}
		for n, idx := range toEmbed {
			emb := embeddings[n]
			if !embedding.Valid(emb) {
				return 0, fmt.Errorf("embedder returned an invalid vector for chunk %s", chunks[idx].ID)
			}
			if len(emb) != i.dimensions {
				return 0, fmt.Errorf("%w: embedder returned %d dimensions, expected %d",
					vecmath.ErrDimensionMismatch, len(emb), i.dimensions)
			}
			vecmath.NormalizeL2(emb)
			chunks[idx].Embedding = emb
		}
	}

	if err := i.store.PutChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("persisting chunks: %w", err)
	}
	if err := i.sparse.IndexBatch(ctx, chunks); err != nil {
		return 0, fmt.Errorf("lexical indexing: %w", err)
	}
	if err := i.RebuildDense(ctx); err != nil {
		return 0, err
	}
	i.logger.Info("chunks ingested", zap.Int("count", len(chunks)))
	return len(chunks), nil
}

// DeletePage removes all chunks for url from the store and both indexes.
// Returns the number of chunks removed.
func (i *Ingester) DeletePage(ctx context.Context, url string) (int, error) {
	ids, err := i.store.DeleteByURL(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}
	for _, id := range ids {
		if err := i.sparse.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("lexical delete %s: %w", id, err)
		}
	}
	if len(ids) > 0 {
		if err := i.RebuildDense(ctx); err != nil {
			return 0, err
		}
	}
	i.logger.Info("page deleted", zap.String("url", url), zap.Int("chunks", len(ids)))
	return len(ids), nil
}

// RebuildDense rebuilds the dense index from the store and swaps it into the
// engine. A snapshot is written when a snapshot path is configured.
func (i *Ingester) RebuildDense(ctx context.Context) error {
	chunks, err := i.store.ListChunks(ctx)
	if err != nil {
		return fmt.Errorf("listing chunks: %w", err)
	}
	ix, err := vector.BuildIndex(i.dimensions, chunks)
	if err != nil {
		return fmt.Errorf("building dense index: %w", err)
	}
	i.engine.SwapDenseIndex(ix)
	if i.snapshotPath != "" {
		if err := ix.Save(i.snapshotPath); err != nil {
			i.logger.Warn("dense snapshot failed", zap.String("path", i.snapshotPath), zap.Error(err))
		}
	}
	return nil
}
