package cache

import (
	"container/list"
	"sync"
)

var _ Cache[int] = (*LRUCache[int])(nil)

// LRUCache keeps at most maxSize entries and evicts the least recently
// read or written one when full. Keys embed everything the value depends
// on, so entries never go stale and are never invalidated explicitly.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front is most recent
}

type entry[T any] struct {
	key  string
	data T
}

func NewLRUCache[T any](maxSize int) *LRUCache[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRUCache[T]{
		maxSize: maxSize,
		entries: make(map[string]*list.Element, maxSize),
		order:   list.New(),
	}
}

func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[T]).data, true
}

func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*entry[T]).data = data
		c.order.MoveToFront(elem)
		return
	}
	c.entries[key] = c.order.PushFront(&entry[T]{key: key, data: data})

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		delete(c.entries, oldest.Value.(*entry[T]).key)
		c.order.Remove(oldest)
	}
}

func (c *LRUCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
