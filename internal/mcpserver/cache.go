package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/rxdoc/document"
)

type cached struct {
	key     string
	doc     *document.Document
	expires time.Time
}

func (c *cached) expired(now time.Time) bool {
	return !c.expires.IsZero() && now.After(c.expires)
}

// docCacheStore is an LRU of decoded documents with per-entry expiry.
// Documents handed out are shared: tools clone before writing.
type docCacheStore struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	index   map[string]*list.Element
	maxSize int

	sweeping atomic.Bool
}

func newDocCache(maxSize int) *docCacheStore {
	return &docCacheStore{order: list.New(), index: make(map[string]*list.Element), maxSize: maxSize}
}

var docCache = newDocCache(cfg.CacheMaxSize)

func (c *docCacheStore) get(key string) *document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[key]
	if !ok {
		return nil
	}
	if el.Value.(*cached).expired(time.Now()) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*cached).doc
}

func (c *docCacheStore) put(key string, doc *document.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := &cached{key: key, doc: doc, expires: time.Now().Add(ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.maxSize && c.order.Len() > 0 {
		c.remove(c.order.Back())
	}
	c.index[key] = c.order.PushFront(entry)
}

// remove must be called with mu held.
func (c *docCacheStore) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*cached).key)
}

func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*cached).expired(now) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done. At most one
// sweeper runs at a time.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				c.sweep()
			}
		}
	}()
}

func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.index)
}

func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
