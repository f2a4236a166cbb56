package search

import (
	"github.com/pagehound/pagehound/internal/config"
	"github.com/pagehound/pagehound/internal/models"
)

// ProcessQuery validates the query and fills unset fields from the search
// config. TopK is raised to at least the requested limit, since grouping can
// only shrink the candidate set.
func ProcessQuery(q *models.SearchQuery, cfg *config.SearchConfig) error {
	if cfg != nil && q.DenseWeight == 0 && q.SparseWeight == 0 {
		q.DenseWeight = cfg.DenseWeight
		q.SparseWeight = cfg.SparseWeight
	}
	if cfg != nil && q.Limit <= 0 && cfg.DefaultLimit > 0 {
		q.Limit = cfg.DefaultLimit
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if cfg != nil {
		if cfg.MaxLimit > 0 && q.Limit > cfg.MaxLimit {
			q.Limit = cfg.MaxLimit
		}
		if q.TopK <= 0 {
			q.TopK = cfg.TopKCandidates
		}
		if q.TimeoutMs <= 0 {
			q.TimeoutMs = cfg.TimeoutMs
		}
	}
	if q.TopK < q.Limit {
		q.TopK = q.Limit
	}
	if q.TimeoutMs <= 0 {
		q.TimeoutMs = 220
	}
	return nil
}
