package lockfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	lk := New(path)

	require.NoError(t, lk.Acquire(context.Background(), time.Second))
	assert.FileExists(t, lk.Path())
	lk.Release()

	// Reacquirable after release.
	require.NoError(t, lk.Acquire(context.Background(), time.Second))
	lk.Release()
}

func TestLockPath(t *testing.T) {
	lk := New("runs/a.jsonl")
	assert.Equal(t, "runs/a.jsonl.lock", lk.Path())
}

func TestLockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	holder := New(path)
	require.NoError(t, holder.Acquire(context.Background(), time.Second))
	defer holder.Release()

	t.Run("second acquisition times out while held", func(t *testing.T) {
		waiter := New(path)
		start := time.Now()
		err := waiter.Acquire(context.Background(), 300*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out acquiring lock")
		assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		waiter := New(path)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := waiter.Acquire(ctx, time.Minute)
		require.Error(t, err)
	})
}

func TestLockHandoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	holder := New(path)
	require.NoError(t, holder.Acquire(context.Background(), time.Second))

	done := make(chan error, 1)
	go func() {
		waiter := New(path)
		err := waiter.Acquire(context.Background(), 5*time.Second)
		if err == nil {
			waiter.Release()
		}
		done <- err
	}()

	time.Sleep(150 * time.Millisecond)
	holder.Release()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter never acquired the released lock")
	}
}
