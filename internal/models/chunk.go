// Package models defines core data structures for chunks, queries, and search results.
package models

import "time"

// Chunk is the atomic retrievable unit: a segment of text captured from one page.
// Embeddings are L2-normalized at ingest time and never mutated afterwards.
type Chunk struct {
	ID        string    `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	Embedding []float32 `json:"-" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChunkInput is the input for submitting captured chunks for indexing.
// ID is assigned when empty. Embedding is optional; when absent the ingest
// pipeline embeds Text itself.
type ChunkInput struct {
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkBatch is the payload of a capture file or an index request.
type ChunkBatch struct {
	Chunks []*ChunkInput `json:"chunks"`
}
