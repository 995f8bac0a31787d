package embedding

import (
	"container/list"
	"sync"
)

// EmbeddingCache is an LRU cache of title embeddings. Popular queries re-scrape
// the same product titles over and over, so the ONNX embedder consults it
// before running inference.
type EmbeddingCache struct {
	capacity int
	byTitle  map[string]*list.Element
	lru      *list.List
	mu       sync.RWMutex
}

type cacheEntry struct {
	title     string
	embedding []float32
}

// NewEmbeddingCache creates a cache holding at most capacity titles.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	return &EmbeddingCache{
		capacity: capacity,
		byTitle:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached embedding for title if present.
func (c *EmbeddingCache) Get(title string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if elem, ok := c.byTitle[title]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).embedding, true
	}
	return nil, false
}

// Set stores the embedding for title, evicting the least recently used entry
// when at capacity.
func (c *EmbeddingCache) Set(title string, embedding []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byTitle[title]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).embedding = embedding
		return
	}

	c.byTitle[title] = c.lru.PushFront(&cacheEntry{title: title, embedding: embedding})
	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.byTitle, oldest.Value.(*cacheEntry).title)
		}
	}
}

// Len returns the number of cached titles.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}
