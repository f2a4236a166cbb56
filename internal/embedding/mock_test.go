package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/pagehound/pagehound/pkg/vecmath"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(16)
	ctx := context.Background()
	a, err := e.Embed(ctx, "hybrid search")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(ctx, "hybrid search")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestMockEmbedder_Normalized(t *testing.T) {
	e := NewMockEmbedder(32)
	emb, err := e.Embed(context.Background(), "anything at all")
	if err != nil {
		t.Fatal(err)
	}
	if len(emb) != 32 {
		t.Fatalf("expected 32 dimensions, got %d", len(emb))
	}
	if !vecmath.IsNormalized(emb, 1e-4) {
		t.Errorf("embedding should be unit length, norm=%f", vecmath.L2Norm(emb))
	}
	if !Valid(emb) {
		t.Error("embedding should be valid")
	}
}

func TestValid(t *testing.T) {
	if Valid(nil) {
		t.Error("nil vector should be invalid")
	}
	if Valid([]float32{}) {
		t.Error("empty vector should be invalid")
	}
	if Valid([]float32{1, float32(math.NaN())}) {
		t.Error("NaN-containing vector should be invalid")
	}
	if !Valid([]float32{0.1, 0.2}) {
		t.Error("plain vector should be valid")
	}
}
