package models

import (
	"fmt"
	"strings"
)

// SearchQuery represents a hybrid search request.
type SearchQuery struct {
	Query string `json:"query"`
	// Limit is the maximum number of URL groups returned.
	Limit int `json:"limit,omitempty"`
	// TopK bounds the candidates taken from each side before merging.
	// Zero means the configured default.
	TopK int `json:"top_k,omitempty"`
	// DenseWeight and SparseWeight control the linear fusion. When both are
	// zero the default equal weighting (0.5/0.5) applies.
	DenseWeight  float64 `json:"dense_weight,omitempty"`
	SparseWeight float64 `json:"sparse_weight,omitempty"`
	// TimeoutMs overrides the configured end-to-end latency budget.
	TimeoutMs int `json:"timeout_ms,omitempty"`
}

// Validate ensures the query has valid fields and sets per-query defaults.
// Weights are normalized to sum to 1 so callers can pass any positive ratio.
func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.DenseWeight < 0 || q.SparseWeight < 0 {
		return fmt.Errorf("weights cannot be negative")
	}
	sum := q.DenseWeight + q.SparseWeight
	if sum == 0 {
		q.DenseWeight = 0.5
		q.SparseWeight = 0.5
	} else {
		q.DenseWeight /= sum
		q.SparseWeight /= sum
	}
	return nil
}
