package sync

import "sync"

// TypedRefCounter counts the outstanding holders of each key. A key is
// held while at least one Acquire has not yet been matched by a
// Release. The zero value is ready for use.
type TypedRefCounter[K comparable] struct {
	mutex  sync.Mutex
	counts map[K]int
}

// Acquire registers a new holder of the key, returning the number of
// holders including this one.
func (c *TypedRefCounter[K]) Acquire(key K) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.counts == nil {
		c.counts = make(map[K]int)
	}
	c.counts[key]++

	return c.counts[key]
}

// Release drops one holder of the key. Releasing a key which is not
// held is a no-op.
func (c *TypedRefCounter[K]) Release(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.counts[key] <= 1 {
		delete(c.counts, key)
		return
	}

	c.counts[key]--
}

func (c *TypedRefCounter[K]) Held(key K) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.counts[key] > 0
}

// Len returns the number of distinct keys currently held.
func (c *TypedRefCounter[K]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.counts)
}
