package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codeintel/internal/types"
)

func testKey(ns string) Key {
	return Key{Namespace: ns, ContentHash: types.ContentHash{1, 2, 3}, AnalyzerVersion: "v1", ConfigHash: "cfg"}
}

func TestCache_MissThenHitFromL1(t *testing.T) {
	c := New("", 10)
	var calls int64

	v, hit, err := c.GetOrCompute(testKey("ns"), func() ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte("computed"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("computed"), v)

	v2, hit2, err := c.GetOrCompute(testKey("ns"), func() ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte("should not run"), nil
	})
	require.NoError(t, err)
	assert.True(t, hit2)
	assert.Equal(t, []byte("computed"), v2)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestCache_PopulatesL2WhenDiskEnabled(t *testing.T) {
	c := New(t.TempDir(), 10)
	key := testKey("ns")

	_, _, err := c.GetOrCompute(key, func() ([]byte, error) { return []byte("disk-value"), nil })
	require.NoError(t, err)

	v, ok := c.l2.Get(key.Namespace, key.Fingerprint())
	assert.True(t, ok)
	assert.Equal(t, []byte("disk-value"), v)
}

func TestCache_ComputeErrorIsPropagatedAndNotCached(t *testing.T) {
	c := New("", 10)
	boom := errors.New("boom")

	_, _, err := c.GetOrCompute(testKey("ns"), func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	var calls int64
	_, hit, err := c.GetOrCompute(testKey("ns"), func() ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestCache_SingleflightDedupsConcurrentMiss(t *testing.T) {
	c := New("", 10)
	key := testKey("concurrent")
	var calls int64

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = c.GetOrCompute(key, func() ([]byte, error) {
				atomic.AddInt64(&calls, 1)
				return []byte("v"), nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestCache_StatsTrackHitsAndMisses(t *testing.T) {
	c := New("", 10)
	key := testKey("ns")
	_, _, _ = c.GetOrCompute(key, func() ([]byte, error) { return []byte("v"), nil })
	_, _, _ = c.GetOrCompute(key, func() ([]byte, error) { return []byte("v"), nil })

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}
