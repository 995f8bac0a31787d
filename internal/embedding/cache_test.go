package embedding

import (
	"testing"
)

func TestEmbeddingCacheGetSet(t *testing.T) {
	c := NewEmbeddingCache(2)
	if v, ok := c.Get("Apple iPhone 15"); ok || v != nil {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("Apple iPhone 15", []float32{1, 2, 3})
	v, ok := c.Get("Apple iPhone 15")
	if !ok || len(v) != 3 || v[0] != 1 {
		t.Errorf("Get: got %v, %v", v, ok)
	}
	c.Set("Samsung Galaxy S23", []float32{4, 5})
	c.Set("OnePlus Nord CE 4", []float32{6}) // evicts the iPhone
	if _, ok := c.Get("Apple iPhone 15"); ok {
		t.Error("oldest title should be evicted")
	}
	if _, ok := c.Get("Samsung Galaxy S23"); !ok {
		t.Error("second title should remain")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestEmbeddingCacheTouchOnGet(t *testing.T) {
	c := NewEmbeddingCache(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Get("a") // a becomes most recent
	c.Set("c", []float32{3})
	if _, ok := c.Get("a"); !ok {
		t.Error("recently read title should survive eviction")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used title should be evicted")
	}
}
