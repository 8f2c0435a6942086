package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gripbench/gripbench/internal/domain"
	"github.com/gripbench/gripbench/internal/lockfile"
)

// DefaultPath returns the timestamped shared output path used when the
// caller does not supply one: runs/<YYYYMMDD-HHMMSS>__aggregate.jsonl.
func DefaultPath(now time.Time) string {
	return filepath.Join("runs", now.Format("20060102-150405")+"__aggregate.jsonl")
}

// AppendRecords appends a batch of records to the shared output file under
// the cross-process lock: one JSON object per line, fsynced before release,
// so concurrent runner processes never interleave or truncate each other's
// batches. On lock timeout nothing is written and the batch stays with the
// caller.
func AppendRecords(ctx context.Context, path string, records []domain.Record, lockTimeout time.Duration) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	lk := lockfile.New(path)
	if err := lk.Acquire(ctx, lockTimeout); err != nil {
		return err
	}
	defer lk.Release()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			f.Close()
			return fmt.Errorf("writing record to %s: %w", path, err)
		}
	}

	// Force the batch to durable storage before the lock is released.
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return f.Close()
}
