package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gripbench/gripbench/internal/cli"
	"github.com/gripbench/gripbench/internal/config"
)

const quickStart = `gripbench - graspability benchmark for vision-language models

START HERE (this is the command you want):
  gripbench launch

This benchmarks the configured model roster, one isolated process per
model, and appends every (prompt, image) record to a shared JSONL file
under runs/.

Other useful commands:
  gripbench run --model <id>            Benchmark a single model
  gripbench summary <file.jsonl>        Per-model record and error counts
  gripbench config                      Show effective configuration
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	ctx := kong.Parse(&c,
		kong.Name("gripbench"),
		kong.Description("Benchmark vision-language models on object graspability\n\nSTART HERE: gripbench launch"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"config_format": cfg.Format,
		},
	)

	globals := cli.NewGlobals(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
