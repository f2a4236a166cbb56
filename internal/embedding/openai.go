package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pagehound/pagehound/pkg/vecmath"
)

// OpenAIEmbedder produces embeddings via an OpenAI-compatible embeddings API.
// BaseURL may point at a local server exposing the same API.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	cache      *Cache
}

// NewOpenAIEmbedder creates an embedder for the given model. dimensions must
// match what the model returns; it is verified on the first call.
func NewOpenAIEmbedder(apiKey, baseURL, model string, dimensions, cacheSize int) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("API key not set")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if dimensions <= 0 {
		dimensions = 1536 // text-embedding-3-small
		if model == string(openai.LargeEmbedding3) {
			dimensions = 3072
		}
	}
	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
		cache:      NewCache(cacheSize),
	}, nil
}

// Embed returns a normalized embedding for text, using cache when available.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings API: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned from API")
	}
	emb := resp.Data[0].Embedding
	if len(emb) != e.dimensions {
		return nil, fmt.Errorf("%w: API returned %d dimensions, expected %d",
			vecmath.ErrDimensionMismatch, len(emb), e.dimensions)
	}
	v := make([]float32, len(emb))
	copy(v, emb)
	vecmath.NormalizeL2(v)
	e.cache.Set(text, v)
	return v, nil
}

// EmbedBatch embeds texts in one API request where possible.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings API: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d texts", len(resp.Data), len(texts))
	}
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		v := make([]float32, len(d.Embedding))
		copy(v, d.Embedding)
		vecmath.NormalizeL2(v)
		out[d.Index] = v
	}
	return out, nil
}

// Dimensions returns the embedding dimension.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for OpenAIEmbedder.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
