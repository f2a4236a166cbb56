package search

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pagehound/pagehound/internal/config"
	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/vector"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
	chunks map[string]*models.Chunk
}

func newFakeStore(chunks ...*models.Chunk) *fakeStore {
	s := &fakeStore{chunks: make(map[string]*models.Chunk)}
	for _, c := range chunks {
		s.chunks[c.ID] = c
	}
	return s
}

func (s *fakeStore) PutChunks(ctx context.Context, chunks []*models.Chunk) error {
	for _, c := range chunks {
		s.chunks[c.ID] = c
	}
	return nil
}

func (s *fakeStore) GetChunk(ctx context.Context, id string) (*models.Chunk, error) {
	if c, ok := s.chunks[id]; ok {
		return c, nil
	}
	return nil, errors.New("chunk not found")
}

func (s *fakeStore) ListChunks(ctx context.Context) ([]*models.Chunk, error) {
	out := make([]*models.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) DeleteByURL(ctx context.Context, url string) ([]string, error) {
	var ids []string
	for id, c := range s.chunks {
		if c.URL == url {
			ids = append(ids, id)
			delete(s.chunks, id)
		}
	}
	return ids, nil
}

func (s *fakeStore) CountChunks(ctx context.Context) (int64, error) {
	return int64(len(s.chunks)), nil
}

func (s *fakeStore) CountPages(ctx context.Context) (int64, error) {
	urls := make(map[string]struct{})
	for _, c := range s.chunks {
		urls[c.URL] = struct{}{}
	}
	return int64(len(urls)), nil
}

func (s *fakeStore) Close() error { return nil }

// fakeSparse returns fixed hits for any query.
type fakeSparse struct {
	hits []*keyword.Hit
	err  error
}

func (f *fakeSparse) Index(ctx context.Context, chunk *models.Chunk) error        { return nil }
func (f *fakeSparse) IndexBatch(ctx context.Context, chunks []*models.Chunk) error { return nil }
func (f *fakeSparse) Delete(ctx context.Context, id string) error                  { return nil }
func (f *fakeSparse) DocCount() (uint64, error)                                    { return uint64(len(f.hits)), nil }
func (f *fakeSparse) Close() error                                                 { return nil }
func (f *fakeSparse) Search(ctx context.Context, query string, limit int) ([]*keyword.Hit, error) {
	return f.hits, f.err
}

// fixedEmbedder returns a preset vector, optionally after a delay.
type fixedEmbedder struct {
	vec   []float32
	err   error
	delay time.Duration
}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if e.err != nil {
		return nil, e.err
	}
	out := make([]float32, len(e.vec))
	copy(out, e.vec)
	return out, nil
}

func (e *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		v, err := e.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *fixedEmbedder) Dimensions() int { return len(e.vec) }
func (e *fixedEmbedder) Close() error    { return nil }

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		DefaultLimit:   10,
		MaxLimit:       100,
		TopKCandidates: 50,
		DenseWeight:    0.5,
		SparseWeight:   0.5,
		TimeoutMs:      2000,
	}
}

func testDenseIndex(t *testing.T) *vector.Index {
	t.Helper()
	b, err := vector.NewBuilder(4)
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Add("c1", "https://example.com/p1", []float32{1, 0, 0, 0})
	_ = b.Add("c2", "https://example.com/p1", []float32{0, 1, 0, 0})
	_ = b.Add("c3", "https://example.com/p2", []float32{0, 0, 1, 0})
	return b.Build()
}

func TestEngineSearch(t *testing.T) {
	store := newFakeStore(
		&models.Chunk{ID: "c1", URL: "https://example.com/p1", Title: "Page 1", Text: "machine learning algorithms"},
		&models.Chunk{ID: "c2", URL: "https://example.com/p1", Title: "Page 1", Text: "more on page one"},
		&models.Chunk{ID: "c3", URL: "https://example.com/p2", Title: "Page 2", Text: "deep learning neural networks"},
		&models.Chunk{ID: "c4", URL: "https://example.com/p3", Title: "Page 3", Text: "sparse only content"},
	)
	sparse := &fakeSparse{hits: []*keyword.Hit{
		{ChunkID: "c1", URL: "https://example.com/p1", Score: 4},
		{ChunkID: "c4", URL: "https://example.com/p3", Score: 2},
	}}
	embedder := &fixedEmbedder{vec: []float32{1, 0, 0, 0}}
	engine := NewEngine(store, embedder, testDenseIndex(t), sparse, testSearchConfig(), zap.NewNop())

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "machine learning"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Groups) == 0 {
		t.Fatal("expected results")
	}
	top := resp.Groups[0]
	if top.URL != "https://example.com/p1" {
		t.Errorf("top group should be p1 (dense 1.0 + sparse 1.0), got %s", top.URL)
	}
	rep := top.Chunks[0]
	if rep.ChunkID != "c1" {
		t.Errorf("top chunk should be c1, got %s", rep.ChunkID)
	}
	if math.Abs(rep.DenseScore-1.0) > 1e-4 {
		t.Errorf("c1 dense score should be ~1.0, got %f", rep.DenseScore)
	}
	if rep.Title != "Page 1" || rep.Snippet == "" {
		t.Errorf("metadata not attached: title=%q snippet=%q", rep.Title, rep.Snippet)
	}
	// Sparse-only c4 must survive the union with dense score 0.
	var sawP3 bool
	for _, g := range resp.Groups {
		if g.URL == "https://example.com/p3" {
			sawP3 = true
			if g.Chunks[0].DenseScore != 0 {
				t.Errorf("sparse-only chunk should have dense score 0, got %f", g.Chunks[0].DenseScore)
			}
		}
	}
	if !sawP3 {
		t.Error("sparse-only page missing from results")
	}
	if resp.Timing.TotalMs < 0 {
		t.Errorf("timing should be populated, got %+v", resp.Timing)
	}
}

func TestEngineSearch_Deterministic(t *testing.T) {
	store := newFakeStore()
	sparse := &fakeSparse{hits: []*keyword.Hit{{ChunkID: "c3", URL: "https://example.com/p2", Score: 1}}}
	embedder := &fixedEmbedder{vec: []float32{1, 0, 0, 0}}
	engine := NewEngine(store, embedder, testDenseIndex(t), sparse, testSearchConfig(), zap.NewNop())

	var first []string
	for i := 0; i < 5; i++ {
		resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "anything"})
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, g := range resp.Groups {
			for _, c := range g.Chunks {
				ids = append(ids, c.ChunkID)
			}
		}
		if i == 0 {
			first = ids
			continue
		}
		if len(ids) != len(first) {
			t.Fatalf("run %d: result count changed", i)
		}
		for j := range ids {
			if ids[j] != first[j] {
				t.Fatalf("run %d: ordering changed at %d: %s vs %s", i, j, ids[j], first[j])
			}
		}
	}
}

func TestEngineSearch_IndexNotReady(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{1}}, nil, &fakeSparse{}, testSearchConfig(), zap.NewNop())
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"})
	if !errors.Is(err, ErrIndexNotReady) {
		t.Errorf("expected ErrIndexNotReady, got %v", err)
	}
}

func TestEngineSearch_EmbeddingFailed(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{1}, err: errors.New("model exploded")},
		testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"})
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed, got %v", err)
	}
}

func TestEngineSearch_InvalidEmbedding(t *testing.T) {
	nan := float32(math.NaN())
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{nan, 0, 0, 0}},
		testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"})
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed for NaN vector, got %v", err)
	}
}

func TestEngineSearch_DimensionMismatch(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{1, 0}},
		testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEngineSearch_Timeout(t *testing.T) {
	embedder := &fixedEmbedder{vec: []float32{1, 0, 0, 0}, delay: 200 * time.Millisecond}
	engine := NewEngine(newFakeStore(), embedder, testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x", TimeoutMs: 20})
	if !errors.Is(err, ErrSearchTimeout) {
		t.Errorf("expected ErrSearchTimeout, got %v", err)
	}
}

func TestEngineSearch_SparseFailureFailsWhole(t *testing.T) {
	sparse := &fakeSparse{err: errors.New("index corrupted")}
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{1, 0, 0, 0}},
		testDenseIndex(t), sparse, testSearchConfig(), zap.NewNop())
	if _, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"}); err == nil {
		t.Error("sparse failure must fail the whole query, not degrade to dense-only")
	}
}

func TestEngineSearch_MissingMetadata(t *testing.T) {
	// Store knows nothing: titles and snippets fall back to empty strings.
	engine := NewEngine(newFakeStore(), &fixedEmbedder{vec: []float32{1, 0, 0, 0}},
		testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Groups) == 0 {
		t.Fatal("expected results despite missing metadata")
	}
	if resp.Groups[0].Title != "" || resp.Groups[0].Snippet != "" {
		t.Errorf("missing metadata should yield empty strings, got %+v", resp.Groups[0])
	}
}

func TestEngineSearch_LimitAppliedToGroups(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store, &fixedEmbedder{vec: []float32{1, 0, 0, 0}},
		testDenseIndex(t), &fakeSparse{}, testSearchConfig(), zap.NewNop())
	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "x", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Groups) != 1 {
		t.Errorf("limit 1 should return 1 group, got %d", len(resp.Groups))
	}
	if resp.Total != 2 {
		t.Errorf("total should report pre-limit group count 2, got %d", resp.Total)
	}
}
