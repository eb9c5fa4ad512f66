package kv_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/claude/liftlog/internal/kv"
	"github.com/claude/liftlog/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store, counts Get calls and can be switched to fail writes.
type countingStore struct {
	kv.Store
	gets      int
	failWrite bool
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	if c.failWrite {
		return kv.Wrap("set", key, errors.New("disk full"))
	}
	return c.Store.Set(ctx, key, value)
}

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: kv.NewMemory()}
	require.NoError(t, backing.Store.Set(ctx, "k", []byte("v1")))

	cached := kv.NewCached(backing, 1)
	for i := 0; i < 3; i++ {
		value, found, err := cached.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "v1", string(value))
	}
	assert.Equal(t, 1, backing.gets)
}

func TestCached_HitRate(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	require.NoError(t, backing.Set(ctx, "k", []byte("v1")))
	cached := kv.NewCached(backing, 1)

	assert.Zero(t, cached.HitRate())
	_, _, _ = cached.Get(ctx, "k")
	_, _, _ = cached.Get(ctx, "k")
	assert.InDelta(t, 0.5, cached.HitRate(), 1e-9)
}

func TestCached_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: kv.NewMemory()}
	cached := kv.NewCached(backing, 1)

	_, found, err := cached.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, found)
	_, _, _ = cached.Get(ctx, "absent")
	assert.Equal(t, 2, backing.gets)
}

func TestCached_FailedWriteDoesNotPopulate(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: kv.NewMemory()}
	cached := kv.NewCached(backing, 1)

	require.NoError(t, cached.Set(ctx, "k", []byte("old")))

	backing.failWrite = true
	err := cached.Set(ctx, "k", []byte("new"))
	require.ErrorIs(t, err, kv.ErrStorage)

	value, found, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "old", string(value))
}

func TestCached_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	cached := kv.NewCached(kv.NewMemory(), 1)

	require.NoError(t, cached.Set(ctx, "k", []byte("v")))
	require.NoError(t, cached.Delete(ctx, "k"))

	_, found, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

// pausingStore holds its first Get after reading from the wrapped store until
// release is closed, leaving room for a write to land in between.
type pausingStore struct {
	kv.Store
	paused  atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func (p *pausingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found, err := p.Store.Get(ctx, key)
	if p.paused.CompareAndSwap(false, true) {
		close(p.read)
		<-p.release
	}
	return value, found, err
}

func TestCached_SlowReadDoesNotOverwriteNewerWrite(t *testing.T) {
	ctx := context.Background()
	backing := &pausingStore{
		Store:   kv.NewMemory(),
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	require.NoError(t, backing.Store.Set(ctx, "k", []byte("v1")))
	cached := kv.NewCached(backing, 1)

	done := make(chan []byte)
	go func() {
		value, _, _ := cached.Get(ctx, "k")
		done <- value
	}()

	<-backing.read
	require.NoError(t, cached.Set(ctx, "k", []byte("v2")))
	close(backing.release)
	assert.Equal(t, "v1", string(<-done))

	value, found, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v2", string(value))
}

func TestCached_SlowReadDoesNotResurrectDeletedKey(t *testing.T) {
	ctx := context.Background()
	backing := &pausingStore{
		Store:   kv.NewMemory(),
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	require.NoError(t, backing.Store.Set(ctx, "k", []byte("v1")))
	cached := kv.NewCached(backing, 1)

	done := make(chan struct{})
	go func() {
		_, _, _ = cached.Get(ctx, "k")
		close(done)
	}()

	<-backing.read
	require.NoError(t, cached.Delete(ctx, "k"))
	close(backing.release)
	<-done

	_, found, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInstrumented_CountsResults(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewTestManager()
	backing := &countingStore{Store: kv.NewMemory()}
	store := kv.NewInstrumented(backing, "memory", m)

	_, _, _ = store.Get(ctx, "absent")
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	_, _, _ = store.Get(ctx, "k")
	backing.failWrite = true
	_ = store.Set(ctx, "k", []byte("v2"))
	require.NoError(t, store.Delete(ctx, "k"))

	counter := m.CounterStoreOps
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("memory", "get", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("memory", "get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("memory", "set", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("memory", "set", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("memory", "delete", "ok")))
}
