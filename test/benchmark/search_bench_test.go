package benchmark

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/pagehound/pagehound/internal/embedding"
	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/search"
	"github.com/pagehound/pagehound/internal/vector"
	"github.com/pagehound/pagehound/pkg/vecmath"
)

const benchDims = 384

// syntheticVector returns a deterministic unit vector seeded by i.
func syntheticVector(i int) []float32 {
	v := make([]float32, benchDims)
	for d := range v {
		v[d] = float32(math.Sin(float64(i*benchDims + d)))
	}
	vecmath.NormalizeL2(v)
	return v
}

func buildBenchIndex(b *testing.B, n int) *vector.Index {
	b.Helper()
	builder, err := vector.NewBuilder(benchDims)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("chunk-%06d", i)
		url := fmt.Sprintf("https://example.com/page-%d", i/5)
		if err := builder.Add(id, url, syntheticVector(i)); err != nil {
			b.Fatal(err)
		}
	}
	return builder.Build()
}

func BenchmarkDenseSearch_10k(b *testing.B) {
	ix := buildBenchIndex(b, 10000)
	query := syntheticVector(42)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ix.Search(ctx, query, 50); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMerge(b *testing.B) {
	dense := make([]*vector.Hit, 50)
	sparse := make([]*keyword.Hit, 50)
	for i := 0; i < 50; i++ {
		dense[i] = &vector.Hit{
			ChunkID: fmt.Sprintf("chunk-%03d", i),
			URL:     fmt.Sprintf("https://example.com/page-%d", i/5),
			Score:   1 - float64(i)/50,
		}
		// Half the sparse hits overlap with dense, half are new.
		sparse[i] = &keyword.Hit{
			ChunkID: fmt.Sprintf("chunk-%03d", i+25),
			URL:     fmt.Sprintf("https://example.com/page-%d", (i+25)/5),
			Score:   float64(50-i) / 5,
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.Merge(dense, sparse, 0.5, 0.5, nil)
	}
}

func BenchmarkGroupByURL(b *testing.B) {
	dense := make([]*vector.Hit, 100)
	for i := range dense {
		dense[i] = &vector.Hit{
			ChunkID: fmt.Sprintf("chunk-%03d", i),
			URL:     fmt.Sprintf("https://example.com/page-%d", i/4),
			Score:   1 - float64(i)/100,
		}
	}
	merged := search.Merge(dense, nil, 1, 0, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.GroupByURL(merged)
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := embedding.NewMockEmbedder(benchDims)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "benchmark query text for embedding")
	}
}
