// Package cache memoises derived values that are expensive to rebuild.
package cache

// Cache is a bounded key/value memo.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	// Len reports how many entries are held.
	Len() int
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
func GetOrCompute[T any](c Cache[T], key string, compute func() T) (T, bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}
	v := compute()
	c.Set(key, v)
	return v, false
}
