package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/gripbench/gripbench/internal/output"
	"github.com/gripbench/gripbench/internal/runner"
)

// RunCmd benchmarks a single model in the current process and appends its
// records to the shared output file. The launcher spawns one of these per
// model; running it by hand is also fine.
type RunCmd struct {
	Model           string        `required:"" help:"Model name or path to load."`
	Token           string        `env:"HF_TOKEN" help:"Inference API token (defaults to $HF_TOKEN)."`
	Output          string        `short:"o" help:"JSONL output path (default: runs/<timestamp>__aggregate.jsonl)."`
	Images          []string      `help:"Image paths to evaluate (default: configured images)."`
	Endpoint        string        `env:"GRIPBENCH_ENDPOINT" help:"Inference backend base URL."`
	LockTimeout     time.Duration `default:"60s" help:"Maximum wait for the shared output file lock."`
	TrustRemoteCode bool          `default:"true" negatable:"" help:"Trust remote code when loading the pipeline."`
}

// Run executes the run command
func (c *RunCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outputPath := c.Output
	if outputPath == "" {
		outputPath = output.DefaultPath(globals.Clock.Now())
	}
	images := c.Images
	if len(images) == 0 {
		images = globals.Config.Defaults.Images
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = globals.Config.Endpoint
	}

	globals.Log.Infow("running model in isolated process", "model", c.Model)
	globals.Log.Infow("appending results", "path", outputPath)

	_, err := runner.Run(ctx, runner.Options{
		Model:           c.Model,
		Token:           c.Token,
		Endpoint:        endpoint,
		Output:          outputPath,
		Images:          images,
		TrustRemoteCode: c.TrustRemoteCode,
		LockTimeout:     c.LockTimeout,
		Echo:            recordEcho(globals),
		Log:             globals.Log,
		Clock:           globals.Clock,
	})
	if err != nil {
		var appendErr *runner.AppendError
		if errors.As(err, &appendErr) {
			outputErrorCommon(globals, "APPEND_FAILED", err.Error())
			return &ExitError{Code: 2, Err: err}
		}
		// Anything else that escapes the run loop means no usable
		// inference backend: nothing was executed.
		outputErrorCommon(globals, "BACKEND_UNAVAILABLE", err.Error())
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

// recordEcho builds the live record sink for the configured output format.
func recordEcho(globals *Globals) runner.RecordEcho {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout)
	}
	plain := true
	if f, ok := globals.Stdout.(*os.File); ok {
		plain = !isatty.IsTerminal(f.Fd())
	}
	return output.NewTextWriter(globals.Stdout, plain)
}
