// Package worker spawns one isolated runner process per model. Process
// isolation is deliberate: a loaded model's memory is only reliably
// reclaimed by full process teardown, so each task gets its own process and
// reports its exit code back to the orchestrator.
package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// Worker describes one runner invocation.
type Worker struct {
	// Exe is the binary to invoke; defaults to the current executable.
	Exe string

	Model           string
	Output          string
	Token           string
	Endpoint        string
	Images          []string
	Format          string
	LockTimeout     time.Duration
	TrustRemoteCode bool

	// Stdout and Stderr receive the child's output line by line.
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the argument vector for the runner subprocess, without the
// executable itself.
func (w *Worker) Args() []string {
	args := []string{"run", "--model", w.Model, "--output", w.Output}
	if w.Token != "" {
		args = append(args, "--token", w.Token)
	}
	if w.Endpoint != "" {
		args = append(args, "--endpoint", w.Endpoint)
	}
	for _, img := range w.Images {
		args = append(args, "--images", img)
	}
	if w.Format != "" {
		args = append(args, "--format", w.Format)
	}
	if w.LockTimeout > 0 {
		args = append(args, "--lock-timeout", w.LockTimeout.String())
	}
	if !w.TrustRemoteCode {
		args = append(args, "--no-trust-remote-code")
	}
	return args
}

// Run spawns the runner process and waits for it. The child's exit code is
// returned; a non-zero code is not an error here, the orchestrator decides
// how to treat it.
func (w *Worker) Run(ctx context.Context) (int, error) {
	exe := w.Exe
	if exe == "" {
		exe = os.Args[0]
	}
	return execute(ctx, exe, w.Args(), w.Stdout, w.Stderr)
}

func execute(ctx context.Context, exe string, args []string, outW, errW io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, exe, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting %s: %w", exe, err)
	}

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error { return forwardLines(stdout, outW) })
	group.Go(func() error { return forwardLines(stderr, errW) })

	scanErr := group.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, waitErr
	}
	if scanErr != nil {
		return 0, scanErr
	}
	return 0, nil
}

// maxLineBytes bounds a single forwarded output line. The runner echoes each
// record as one NDJSON line and response bodies are capped at 4MiB upstream,
// so a legitimate line fits here with JSON-escaping overhead to spare.
const maxLineBytes = 8 * 1024 * 1024

// forwardLines copies the child's output line by line so records stay
// whole even when both streams interleave. On any failure the remaining
// output is still drained: a reader that stops mid-stream leaves the child
// blocked on a full pipe, which would wedge the whole launch loop.
func forwardLines(r io.Reader, w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			_, _ = io.Copy(io.Discard, r)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("runner output line too long: %w", err)
		}
		return err
	}
	return nil
}
