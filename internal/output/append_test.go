package output

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gripbench/gripbench/internal/domain"
	"github.com/gripbench/gripbench/internal/lockfile"
)

func sampleRecords(n int) []domain.Record {
	recs := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, domain.Record{
			Timestamp:    time.Date(2025, 8, 24, 12, 0, i, 0, time.UTC).Format(time.RFC3339),
			Model:        "test/model",
			PromptName:   "system_prompt",
			Image:        "sock.png",
			ResponseText: "YES – graspable",
		})
	}
	return recs
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestAppendRecords(t *testing.T) {
	t.Run("appends exactly one line per record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs", "test.jsonl")
		recs := sampleRecords(3)

		require.NoError(t, AppendRecords(context.Background(), path, recs, time.Second))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		for i, line := range lines {
			var got domain.Record
			require.NoError(t, json.Unmarshal([]byte(line), &got))
			assert.Equal(t, recs[i], got)
		}
	})

	t.Run("preserves prior content from other processes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.jsonl")
		prior := `{"timestamp":"2025-08-24T11:00:00Z","model":"other/model","prompt_name":"system_prompt","image":"cat.png","response_text":"NO"}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

		require.NoError(t, AppendRecords(context.Background(), path, sampleRecords(2), time.Second))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "other/model")
	})

	t.Run("leaves non-ASCII unescaped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.jsonl")
		recs := []domain.Record{{
			Timestamp:    "2025-08-24T12:00:00Z",
			Model:        "test/model",
			PromptName:   "system_prompt1",
			Image:        "sock.png",
			ResponseText: "NO – <größer als 12 cm>",
		}}

		require.NoError(t, AppendRecords(context.Background(), path, recs, time.Second))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "NO – <größer als 12 cm>")
		assert.NotContains(t, string(data), "\\u003c")
	})

	t.Run("held lock times out without modifying the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.jsonl")
		prior := "{\"model\":\"other/model\"}\n"
		require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

		lk := lockfile.New(path)
		require.NoError(t, lk.Acquire(context.Background(), time.Second))
		defer lk.Release()

		err := AppendRecords(context.Background(), path, sampleRecords(2), 300*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out acquiring lock")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, prior, string(data))
	})

	t.Run("empty batch still touches the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.jsonl")
		require.NoError(t, AppendRecords(context.Background(), path, nil, time.Second))
		assert.FileExists(t, path)
	})
}

func TestDefaultPath(t *testing.T) {
	ts := time.Date(2025, 8, 24, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("runs", "20250824-093005__aggregate.jsonl"), DefaultPath(ts))
}
