package pattern

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes compiled patterns by path. Concurrent first use of one
// path compiles it once; distinct paths compile in parallel.
type Cache struct {
	patterns sync.Map // string -> *Pattern
	inflight singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return new(Cache)
}

// Get returns the pattern stored under path.
func (c *Cache) Get(path string) (*Pattern, bool) {
	v, ok := c.patterns.Load(path)
	if !ok {
		return nil, false
	}

	return v.(*Pattern), true
}

// Len returns the number of cached keys. A pattern whose path changed on
// normalization is counted under both keys.
func (c *Cache) Len() int {
	n := 0
	c.patterns.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Reset drops every cached pattern.
func (c *Cache) Reset() {
	c.patterns.Range(func(k, _ any) bool {
		c.patterns.Delete(k)
		return true
	})
}

// fetch returns the pattern cached under path, calling compile on a miss.
// The result is stored under path and, when different, its normalized path.
func (c *Cache) fetch(path string, compile func(string) (*Pattern, error)) (*Pattern, bool, error) {
	if p, ok := c.Get(path); ok {
		return p, true, nil
	}

	v, err, _ := c.inflight.Do(path, func() (any, error) {
		if p, ok := c.Get(path); ok {
			return p, nil
		}

		p, err := compile(path)
		if err != nil {
			return nil, err
		}

		c.patterns.Store(path, p)
		if p.path != path {
			c.patterns.Store(p.path, p)
		}

		return p, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.(*Pattern), false, nil
}
