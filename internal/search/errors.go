package search

import (
	"errors"

	"github.com/pagehound/pagehound/pkg/vecmath"
)

// Typed failures surfaced by Engine.Search. A hybrid search either fully
// succeeds or fails as a unit; there is no partial or degraded fallback,
// because a single-sided result would silently corrupt the ranking.
var (
	// ErrDimensionMismatch means the query embedding or a stored embedding
	// disagrees with the index's fixed dimensionality. Not transient.
	ErrDimensionMismatch = vecmath.ErrDimensionMismatch
	// ErrSearchTimeout means the latency budget was exceeded before all
	// stages completed.
	ErrSearchTimeout = errors.New("search timeout")
	// ErrEmbeddingFailed means the embedder failed or returned an invalid
	// (empty or NaN-containing) vector.
	ErrEmbeddingFailed = errors.New("embedding failed")
	// ErrIndexNotReady means search was invoked before the indexes were
	// constructed.
	ErrIndexNotReady = errors.New("index not ready")
)
