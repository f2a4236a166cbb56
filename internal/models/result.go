package models

// ChunkResult is the fused, normalized result for one chunk.
// DenseScore and SparseScore are both in [0,1]; a side that produced no hit
// contributes 0, not absence. Score is the weighted combination.
type ChunkResult struct {
	ChunkID     string  `json:"chunk_id"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	DenseScore  float64 `json:"dense_score"`
	SparseScore float64 `json:"sparse_score"`
	Score       float64 `json:"score"`
}

// ResultGroup aggregates chunk results that share a source URL. Title, Snippet
// and Score come from the group's highest-scoring (representative) chunk.
// Chunks holds all contributing results in ranked order.
type ResultGroup struct {
	URL     string         `json:"url"`
	Title   string         `json:"title"`
	Snippet string         `json:"snippet"`
	Score   float64        `json:"score"`
	Chunks  []*ChunkResult `json:"chunks"`
}

// Timing is the per-stage latency breakdown for one search.
// Dense and sparse run concurrently, so DenseMs+SparseMs can exceed TotalMs.
type Timing struct {
	EmbedMs  int64 `json:"embed_ms"`
	DenseMs  int64 `json:"dense_ms"`
	SparseMs int64 `json:"sparse_ms"`
	MergeMs  int64 `json:"merge_ms"`
	TotalMs  int64 `json:"total_ms"`
}

// SearchResponse is the response for a hybrid search request.
type SearchResponse struct {
	Groups []*ResultGroup `json:"groups"`
	// Total is the number of URL groups before the limit was applied.
	Total  int    `json:"total"`
	Query  string `json:"query"`
	Timing Timing `json:"timing"`
}
