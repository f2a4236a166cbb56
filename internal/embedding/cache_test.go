package embedding

import "testing"

func TestCache_GetSet(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	got, ok := c.Get("a")
	if !ok || got[0] != 1 {
		t.Errorf("expected cached value, got %v ok=%v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key should not be found")
	}
}

func TestCache_Eviction(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	// Touch a so b becomes the eviction candidate.
	c.Get("a")
	c.Set("c", []float32{3})
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len=%d", c.Len())
	}
}

func TestCache_Update(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("a", []float32{9})
	got, _ := c.Get("a")
	if got[0] != 9 {
		t.Errorf("update should replace value, got %v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len=%d after update", c.Len())
	}
}
