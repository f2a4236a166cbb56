// Package search provides hybrid search (dense + sparse) with score
// normalization, result fusion, and URL grouping.
package search

import (
	"sort"

	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/vector"
	"go.uber.org/zap"
)

// NormalizeDense maps a raw cosine similarity from [-1,1] onto [0,1].
// Clamped so floating-point drift slightly outside the bound cannot leak out.
func NormalizeDense(raw float64) float64 {
	n := (raw + 1) / 2
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// NormalizeSparse maps raw lexical scores onto (0,1] by scaling against the
// per-query maximum. Empty input or an all-nonpositive score set returns an
// empty map: scores with no discriminating signal are treated as "no sparse
// evidence", not as valid zero entries, so a chunk's dense-only score is never
// suppressed by a present zero. Duplicate chunk IDs keep the maximum.
func NormalizeSparse(hits []*keyword.Hit) map[string]float64 {
	if len(hits) == 0 {
		return map[string]float64{}
	}
	maxScore := hits[0].Score
	for _, h := range hits {
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}
	if maxScore <= 0 {
		return map[string]float64{}
	}
	normalized := make(map[string]float64, len(hits))
	for _, h := range hits {
		n := h.Score / maxScore
		if prev, ok := normalized[h.ChunkID]; !ok || n > prev {
			normalized[h.ChunkID] = n
		}
	}
	return normalized
}

// Merge unions dense and sparse hits keyed by chunk ID and returns the fused,
// fully ordered result list. A chunk present on only one side always appears,
// with the missing side's score as 0. When both sides know a chunk's URL and
// disagree, the dense side wins and the discrepancy is logged as a
// data-integrity warning. Ordering is combined score descending, then dense
// score descending, then chunk ID ascending.
func Merge(dense []*vector.Hit, sparse []*keyword.Hit, denseWeight, sparseWeight float64, logger *zap.Logger) []*models.ChunkResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make(map[string]*models.ChunkResult, len(dense)+len(sparse))
	for _, h := range dense {
		results[h.ChunkID] = &models.ChunkResult{
			ChunkID:    h.ChunkID,
			URL:        h.URL,
			DenseScore: NormalizeDense(h.Score),
		}
	}
	sparseScores := NormalizeSparse(sparse)
	sparseURLs := make(map[string]string, len(sparse))
	for _, h := range sparse {
		sparseURLs[h.ChunkID] = h.URL
	}
	for chunkID, score := range sparseScores {
		if r, exists := results[chunkID]; exists {
			r.SparseScore = score
			if u := sparseURLs[chunkID]; u != "" && r.URL != "" && u != r.URL {
				logger.Warn("dense and sparse disagree on chunk URL",
					zap.String("chunk_id", chunkID),
					zap.String("dense_url", r.URL),
					zap.String("sparse_url", u))
			}
		} else {
			results[chunkID] = &models.ChunkResult{
				ChunkID:     chunkID,
				URL:         sparseURLs[chunkID],
				SparseScore: score,
			}
		}
	}

	out := make([]*models.ChunkResult, 0, len(results))
	for _, r := range results {
		r.Score = denseWeight*r.DenseScore + sparseWeight*r.SparseScore
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].DenseScore != out[j].DenseScore {
			return out[i].DenseScore > out[j].DenseScore
		}
		return out[i].ChunkID < out[j].ChunkID
	})
	return out
}
