package cli

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gripbench/gripbench/internal/config"
)

// CLI is the root command structure for gripbench
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress informational logging (records are still emitted)"`
	Verbose bool   `short:"v" help:"Show debug output"`

	// Commands
	Run     RunCmd     `cmd:"" help:"Benchmark one model and append results to the shared output file"`
	Launch  LaunchCmd  `cmd:"" help:"Benchmark every model, one isolated runner process at a time"`
	Summary SummaryCmd `cmd:"" help:"Summarize a recorded runs file"`
	Config  ConfigCmd  `cmd:"" help:"Show effective configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Log     *zap.SugaredLogger
	Clock   clock.Clock
}

// NewGlobals creates a new Globals instance with config fallbacks applied
// for flags that were not explicitly set.
func NewGlobals(c *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}

	quiet := c.Quiet || cfg.Quiet
	verbose := c.Verbose || cfg.Verbose

	return &Globals{
		Format:  c.Format,
		Quiet:   quiet,
		Verbose: verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Log:     NewLogger(os.Stderr, verbose, quiet),
		Clock:   clock.New(),
	}
}

// NewLogger builds the diagnostics logger. Diagnostics go to stderr so the
// record stream on stdout stays machine-parseable.
func NewLogger(w io.Writer, verbose, quiet bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if quiet {
		level = zapcore.WarnLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		_, err := io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := io.WriteString(globals.Stdout, "gripbench version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
