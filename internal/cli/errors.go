package cli

import (
	"errors"
	"fmt"

	"github.com/gripbench/gripbench/internal/output"
)

// ExitError carries a specific process exit code through kong's error
// return: 1 for fatal startup failures, 2 for a failed append.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so failures stay machine-readable.
func outputErrorCommon(globals *Globals, code, message string) error {
	if globals != nil && globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteError(code, message)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	}
	return errors.New(message)
}
