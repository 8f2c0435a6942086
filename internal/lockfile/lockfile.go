// Package lockfile coordinates appends to a shared output file across
// independent runner processes. The lock is an OS advisory lock held on a
// sibling "<path>.lock" marker, so ownership is tied to the descriptor
// lifetime and a crashed holder releases automatically. Acquisition is
// polled with a bounded timeout; there is no fairness guarantee.
package lockfile

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// DefaultTimeout bounds lock acquisition when the caller does not supply one.
const DefaultTimeout = 60 * time.Second

const retryInterval = 100 * time.Millisecond

// Lock guards one shared file. The zero value is not usable; construct with New.
type Lock struct {
	fl *flock.Flock
}

// New returns the lock guarding the file at path. The marker lives at the
// sibling "<path>.lock".
func New(path string) *Lock {
	return &Lock{fl: flock.New(path + ".lock")}
}

// Path returns the marker file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Acquire takes the lock, polling every 100ms until timeout elapses or ctx
// is cancelled. A non-positive timeout uses DefaultTimeout. On failure the
// caller must not touch the guarded file.
func (l *Lock) Acquire(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := l.fl.TryLockContext(ctx, retryInterval)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("timed out acquiring lock: %s", l.fl.Path())
		}
		return fmt.Errorf("acquiring lock %s: %w", l.fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring lock: %s", l.fl.Path())
	}
	return nil
}

// Release drops the lock. Errors are swallowed: release runs after the
// critical section and must never mask a write failure. The marker file is
// left in place; unlinking it would race with waiters already holding its
// descriptor.
func (l *Lock) Release() {
	_ = l.fl.Unlock()
}
