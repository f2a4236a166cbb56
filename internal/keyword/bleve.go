// Package keyword provides the Bleve implementation of Index.
package keyword

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/pagehound/pagehound/internal/models"
)

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// bleveChunk is the shape handed to Bleve for indexing. The url field is
// stored untokenized so search hits can be resolved back to their page.
type bleveChunk struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// opened and reused so unchanged chunks are not re-indexed across restarts.
// If the mapping in code changes, remove the index directory to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	chunkMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so a query term
	// matches the exact word as captured from the page.
	textFieldMapping.Analyzer = standard.Name
	chunkMapping.AddFieldMappingsAt("text", textFieldMapping)
	chunkMapping.AddFieldMappingsAt("title", textFieldMapping)
	urlFieldMapping := bleve.NewKeywordFieldMapping()
	urlFieldMapping.Store = true
	chunkMapping.AddFieldMappingsAt("url", urlFieldMapping)
	im.AddDocumentMapping("chunk", chunkMapping)
	im.DefaultType = "chunk"
	im.DefaultMapping = chunkMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes one chunk by its ID.
func (b *BleveIndex) Index(ctx context.Context, chunk *models.Chunk) error {
	return b.index.Index(chunk.ID, &bleveChunk{URL: chunk.URL, Title: chunk.Title, Text: chunk.Text})
}

// IndexBatch indexes chunks in a single Bleve batch.
func (b *BleveIndex) IndexBatch(ctx context.Context, chunks []*models.Chunk) error {
	batch := b.index.NewBatch()
	for _, chunk := range chunks {
		if err := batch.Index(chunk.ID, &bleveChunk{URL: chunk.URL, Title: chunk.Title, Text: chunk.Text}); err != nil {
			return fmt.Errorf("batch index %s: %w", chunk.ID, err)
		}
	}
	return b.index.Batch(batch)
}

// Search runs a match query over title and text and returns up to limit hits.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int) ([]*Hit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"url"}
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*Hit, len(results.Hits))
	for i, hit := range results.Hits {
		url, _ := hit.Fields["url"].(string)
		out[i] = &Hit{ChunkID: hit.ID, URL: url, Score: hit.Score}
	}
	return out, nil
}

// Delete removes a chunk from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// DocCount returns the total number of chunks in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
