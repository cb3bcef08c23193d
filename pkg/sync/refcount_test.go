package sync_test

import (
	gosync "sync"
	"testing"

	"github.com/hbomb79/Tubely/pkg/sync"
	"github.com/stretchr/testify/assert"
)

func TestTypedRefCounter(t *testing.T) {
	counter := &sync.TypedRefCounter[string]{}
	assert.False(t, counter.Held("a"))
	assert.Equal(t, 0, counter.Len())

	assert.Equal(t, 1, counter.Acquire("a"))
	assert.Equal(t, 2, counter.Acquire("a"))
	assert.Equal(t, 1, counter.Acquire("b"))
	assert.Equal(t, 2, counter.Len())

	counter.Release("a")
	assert.True(t, counter.Held("a"), "expected key to remain held until every holder releases it")

	counter.Release("a")
	assert.False(t, counter.Held("a"))
	assert.Equal(t, 1, counter.Len())

	counter.Release("a")
	assert.False(t, counter.Held("a"))
	assert.Equal(t, 1, counter.Acquire("a"), "expected extra release to leave no negative count behind")
}

func TestTypedRefCounter_Concurrent(t *testing.T) {
	counter := &sync.TypedRefCounter[int]{}

	wg := gosync.WaitGroup{}
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Acquire(7)
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, counter.Acquire(7)-1)

	for range 33 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Release(7)
		}()
	}
	wg.Wait()
	assert.False(t, counter.Held(7))
	assert.Equal(t, 0, counter.Len())
}
