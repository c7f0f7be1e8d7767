package render

import (
	"sync"

	"github.com/zeebo/blake3"
)

type digest [32]byte

// cache memoizes rendered output keyed by the blake3 digest of the source.
// Eviction is FIFO; rendering is pure so any entry is always valid.
type cache struct {
	mu    sync.Mutex
	limit int
	items map[digest]string
	order []digest
}

func newCache(limit int) *cache {
	if limit <= 0 {
		return &cache{}
	}
	return &cache{limit: limit, items: make(map[digest]string, limit)}
}

func (c *cache) get(src string) (string, bool) {
	if c == nil || c.limit == 0 {
		return "", false
	}
	k := blake3.Sum256([]byte(src))
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[k]
	return v, ok
}

func (c *cache) put(src, html string) {
	if c == nil || c.limit == 0 {
		return
	}
	k := blake3.Sum256([]byte(src))
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[k]; ok {
		return
	}
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[k] = html
	c.order = append(c.order, k)
}

func (c *cache) len() int {
	if c == nil || c.limit == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
