package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gripbench/gripbench/internal/config"
	"github.com/gripbench/gripbench/internal/output"
)

// ConfigCmd shows the effective configuration and where it came from.
type ConfigCmd struct{}

// configOutput is the NDJSON shape of the effective configuration.
type configOutput struct {
	Type          string         `json:"type"` // Always "config"
	SchemaVersion int            `json:"schemaVersion"`
	File          string         `json:"file,omitempty"`
	Config        *config.Config `json:"config"`
}

// Run executes the config command
func (c *ConfigCmd) Run(globals *Globals) error {
	file := config.ConfigFile()

	if globals.Format == "ndjson" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(&configOutput{
			Type:          "config",
			SchemaVersion: output.SchemaVersion,
			File:          file,
			Config:        globals.Config,
		})
	}

	cfg := globals.Config
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  endpoint: %s\n", valueOrNone(cfg.Endpoint))
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  models: %s\n", strings.Join(cfg.Defaults.Models, ", "))
	fmt.Fprintf(globals.Stdout, "  images: %s\n", strings.Join(cfg.Defaults.Images, ", "))
	fmt.Fprintf(globals.Stdout, "  lock_timeout: %s\n", cfg.Defaults.LockTimeout)
	fmt.Fprintf(globals.Stdout, "  trust_remote_code: %t\n", cfg.Defaults.TrustRemoteCode)
	if file != "" {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", file)
	} else {
		fmt.Fprintln(globals.Stdout, "Config file: (built-in defaults)")
	}
	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
