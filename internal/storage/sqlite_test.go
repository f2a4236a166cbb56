package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/pagehound/pagehound/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chunks.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_PutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []*models.Chunk{
		{ID: "c1", URL: "https://example.com/a", Title: "A", Text: "alpha", Embedding: []float32{0.6, 0.8}},
		{ID: "c2", URL: "https://example.com/a", Title: "A", Text: "beta", Embedding: []float32{1, 0}},
		{ID: "c3", URL: "https://example.com/b", Title: "B", Text: "gamma", Embedding: []float32{0, 1}},
	}
	if err := store.PutChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetChunk(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != "https://example.com/a" || got.Title != "A" || got.Text != "alpha" {
		t.Errorf("unexpected chunk %+v", got)
	}
	if len(got.Embedding) != 2 || math.Abs(float64(got.Embedding[0])-0.6) > 1e-6 {
		t.Errorf("embedding not round-tripped: %v", got.Embedding)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetChunk(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing chunk")
	}
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	c := &models.Chunk{ID: "c1", URL: "https://example.com", Text: "old", Embedding: []float32{1}}
	if err := store.PutChunks(ctx, []*models.Chunk{c}); err != nil {
		t.Fatal(err)
	}
	c.Text = "new"
	if err := store.PutChunks(ctx, []*models.Chunk{c}); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetChunk(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "new" {
		t.Errorf("upsert did not replace text: %q", got.Text)
	}
	n, err := store.CountChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 chunk after upsert, got %d", n)
	}
}

func TestSQLiteStore_ListOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	chunks := []*models.Chunk{
		{ID: "c2", URL: "u", Text: "x", Embedding: []float32{1}},
		{ID: "c1", URL: "u", Text: "x", Embedding: []float32{1}},
		{ID: "c3", URL: "u", Text: "x", Embedding: []float32{1}},
	}
	if err := store.PutChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}
	listed, err := store.ListChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(listed))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if listed[i].ID != want {
			t.Errorf("position %d: want %s, got %s", i, want, listed[i].ID)
		}
	}
}

func TestSQLiteStore_DeleteByURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	chunks := []*models.Chunk{
		{ID: "c1", URL: "https://example.com/a", Text: "x", Embedding: []float32{1}},
		{ID: "c2", URL: "https://example.com/a", Text: "x", Embedding: []float32{1}},
		{ID: "c3", URL: "https://example.com/b", Text: "x", Embedding: []float32{1}},
	}
	if err := store.PutChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}
	ids, err := store.DeleteByURL(ctx, "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 deleted ids, got %v", ids)
	}
	pages, err := store.CountPages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if pages != 1 {
		t.Errorf("expected 1 remaining page, got %d", pages)
	}
}
