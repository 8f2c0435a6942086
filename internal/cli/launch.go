package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gripbench/gripbench/internal/lockfile"
	"github.com/gripbench/gripbench/internal/output"
	"github.com/gripbench/gripbench/internal/worker"
)

// LaunchCmd runs the whole benchmark roster: one isolated runner process
// per model, sequentially to bound peak memory, all appending to one shared
// timestamped output file.
type LaunchCmd struct {
	Models   []string `help:"Model identifiers to run (default: configured roster)."`
	Output   string   `short:"o" help:"Shared JSONL output path (default: runs/<timestamp>__aggregate.jsonl)."`
	Token    string   `env:"HF_TOKEN" help:"Inference API token forwarded to each runner."`
	Endpoint string   `env:"GRIPBENCH_ENDPOINT" help:"Inference backend base URL forwarded to each runner."`
	Images   []string `help:"Image paths forwarded to each runner (default: configured images)."`
	Exe      string   `hidden:"" help:"Override the runner executable."`
}

// Run executes the launch command
func (c *LaunchCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	models := c.Models
	if len(models) == 0 {
		models = globals.Config.Defaults.Models
	}
	if len(models) == 0 {
		return outputErrorCommon(globals, "NO_MODELS", "no models configured to launch")
	}

	path := c.Output
	if path == "" {
		path = output.DefaultPath(globals.Clock.Now())
	}
	images := c.Images
	if len(images) == 0 {
		images = globals.Config.Defaults.Images
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = globals.Config.Endpoint
	}

	lockTimeout := lockfile.DefaultTimeout
	if d, err := time.ParseDuration(globals.Config.Defaults.LockTimeout); err == nil && d > 0 {
		lockTimeout = d
	}

	globals.Log.Infow("shared output file", "path", path)

	for _, model := range models {
		if ctx.Err() != nil {
			break
		}
		globals.Log.Infow("launching isolated process", "model", model)

		w := &worker.Worker{
			Exe:             c.Exe,
			Model:           model,
			Output:          path,
			Token:           c.Token,
			Endpoint:        endpoint,
			Images:          images,
			Format:          globals.Format,
			LockTimeout:     lockTimeout,
			TrustRemoteCode: globals.Config.Defaults.TrustRemoteCode,
			Stdout:          globals.Stdout,
			Stderr:          globals.Stderr,
		}

		code, err := w.Run(ctx)
		if err != nil {
			globals.Log.Warnw("runner failed to start", "model", model, "error", err)
			continue
		}
		// A failing model must not stop the rest of the roster.
		if code != 0 {
			globals.Log.Warnw("runner exited with non-zero code", "model", model, "code", code)
		}
	}

	globals.Log.Infow("all models processed", "path", path)
	return nil
}
