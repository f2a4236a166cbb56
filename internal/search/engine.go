package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pagehound/pagehound/internal/config"
	"github.com/pagehound/pagehound/internal/embedding"
	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/storage"
	"github.com/pagehound/pagehound/internal/vector"
	"github.com/pagehound/pagehound/pkg/utils"
	"github.com/pagehound/pagehound/pkg/vecmath"
)

// snippetMaxLen bounds the snippet text attached to results.
const snippetMaxLen = 300

// Engine runs hybrid (dense + sparse) search over indexed chunks.
// The dense index reference is swapped atomically on re-index; in-flight
// queries continue against the snapshot they started with.
type Engine struct {
	store    storage.Store
	embedder embedding.Embedder
	dense    atomic.Pointer[vector.Index]
	sparse   keyword.Index
	config   *config.SearchConfig
	logger   *zap.Logger
}

// NewEngine creates a search engine with the given dependencies. denseIndex
// may be nil when the engine starts empty; searches fail with ErrIndexNotReady
// until one is swapped in.
func NewEngine(
	store storage.Store,
	embedder embedding.Embedder,
	denseIndex *vector.Index,
	sparseIndex keyword.Index,
	cfg *config.SearchConfig,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:    store,
		embedder: embedder,
		sparse:   sparseIndex,
		config:   cfg,
		logger:   logger,
	}
	if denseIndex != nil {
		e.dense.Store(denseIndex)
	}
	return e
}

// SwapDenseIndex atomically replaces the dense index used by new queries.
func (e *Engine) SwapDenseIndex(ix *vector.Index) {
	e.dense.Store(ix)
}

// DenseIndex returns the current dense index, or nil before the first swap.
func (e *Engine) DenseIndex() *vector.Index {
	return e.dense.Load()
}

// DenseIndexSize returns the number of chunks in the current dense index.
func (e *Engine) DenseIndexSize() int {
	if ix := e.dense.Load(); ix != nil {
		return ix.Size()
	}
	return 0
}

// Search runs the full hybrid pipeline: embed the query, run dense and sparse
// searches concurrently, normalize and merge the scores, enrich with chunk
// metadata, and group by URL. It either fully succeeds or fails with one of
// the typed errors; no partial results are returned.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ProcessQuery(query, e.config); err != nil {
		return nil, err
	}
	denseIdx := e.dense.Load()
	if denseIdx == nil || e.sparse == nil {
		return nil, ErrIndexNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(query.TimeoutMs)*time.Millisecond)
	defer cancel()

	embedStart := time.Now()
	queryVec, err := e.embedder.Embed(ctx, query.Query)
	if err != nil {
		if deadline(ctx, err) {
			return nil, fmt.Errorf("%w: embedding stage: %v", ErrSearchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if !embedding.Valid(queryVec) {
		return nil, fmt.Errorf("%w: embedder returned an invalid vector", ErrEmbeddingFailed)
	}
	if len(queryVec) != denseIdx.Dimensions() {
		return nil, fmt.Errorf("%w: query embedding has %d dimensions, index expects %d",
			ErrDimensionMismatch, len(queryVec), denseIdx.Dimensions())
	}
	// Normalized once here and reused against every stored chunk.
	vecmath.NormalizeL2(queryVec)
	embedMs := time.Since(embedStart).Milliseconds()

	var (
		denseHits  []*vector.Hit
		sparseHits []*keyword.Hit
		denseMs    int64
		sparseMs   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.Now()
		hits, err := denseIdx.Search(gctx, queryVec, query.TopK)
		if err != nil {
			return fmt.Errorf("dense search failed: %w", err)
		}
		denseHits = hits
		denseMs = time.Since(t).Milliseconds()
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		hits, err := e.sparse.Search(gctx, query.Query, query.TopK)
		if err != nil {
			return fmt.Errorf("sparse search failed: %w", err)
		}
		sparseHits = hits
		sparseMs = time.Since(t).Milliseconds()
		return nil
	})
	if err := g.Wait(); err != nil {
		if deadline(ctx, err) {
			return nil, fmt.Errorf("%w: search stage: %v", ErrSearchTimeout, err)
		}
		return nil, err
	}

	mergeStart := time.Now()
	merged := Merge(denseHits, sparseHits, query.DenseWeight, query.SparseWeight, e.logger)
	if err := e.enrich(ctx, merged); err != nil {
		return nil, err
	}
	groups := GroupByURL(merged)
	total := len(groups)
	if len(groups) > query.Limit {
		groups = groups[:query.Limit]
	}
	mergeMs := time.Since(mergeStart).Milliseconds()

	return &models.SearchResponse{
		Groups: groups,
		Total:  total,
		Query:  query.Query,
		Timing: models.Timing{
			EmbedMs:  embedMs,
			DenseMs:  denseMs,
			SparseMs: sparseMs,
			MergeMs:  mergeMs,
			TotalMs:  time.Since(startTime).Milliseconds(),
		},
	}, nil
}

// enrich attaches title and snippet from the chunk store. Missing metadata
// yields empty strings rather than failing the query; a deadline hit does fail
// it, consistent with the no-partial-results rule.
func (e *Engine) enrich(ctx context.Context, results []*models.ChunkResult) error {
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: metadata stage: %v", ErrSearchTimeout, err)
		}
		chunk, err := e.store.GetChunk(ctx, r.ChunkID)
		if err != nil {
			continue
		}
		r.Title = chunk.Title
		r.Snippet = utils.Truncate(chunk.Text, snippetMaxLen)
		if r.URL == "" {
			r.URL = chunk.URL
		}
	}
	return nil
}

// deadline reports whether err (or the context itself) is a deadline hit.
func deadline(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}
