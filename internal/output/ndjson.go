package output

import (
	"encoding/json"
	"io"

	"github.com/gripbench/gripbench/internal/domain"
)

// NDJSONWriter emits benchmark records and control objects as NDJSON.
// HTML escaping is disabled so non-ASCII model output is written as-is.
type NDJSONWriter struct {
	enc *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{enc: enc}
}

// InfoOutput represents an informational message.
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Model         string `json:"model,omitempty"`
	Path          string `json:"path,omitempty"`
}

// WarningOutput represents a warning message.
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Model         string `json:"model,omitempty"`
}

// ErrorOutput represents a command failure.
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// ModelSummary aggregates one model's records in a runs file.
type ModelSummary struct {
	Model   string `json:"model"`
	Records int    `json:"records"`
	Errors  int    `json:"errors"`
}

// RunSummary aggregates a whole runs file.
type RunSummary struct {
	Type          string         `json:"type"` // Always "summary"
	SchemaVersion int            `json:"schemaVersion"`
	Path          string         `json:"path"`
	Total         int            `json:"total"`
	Errors        int            `json:"errors"`
	Models        []ModelSummary `json:"models"`
}

// Write outputs a single benchmark record as one NDJSON line.
func (w *NDJSONWriter) Write(rec *domain.Record) error {
	return w.enc.Encode(rec)
}

// WriteInfo outputs an informational message.
func (w *NDJSONWriter) WriteInfo(message, model, path string) error {
	return w.enc.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Model:         model,
		Path:          path,
	})
}

// WriteWarning outputs a warning message.
func (w *NDJSONWriter) WriteWarning(message, model string) error {
	return w.enc.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Model:         model,
	})
}

// WriteError outputs an error object.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := &ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.enc.Encode(out)
}

// WriteRunSummary outputs a runs-file summary object.
func (w *NDJSONWriter) WriteRunSummary(s *RunSummary) error {
	s.Type = "summary"
	s.SchemaVersion = SchemaVersion
	return w.enc.Encode(s)
}
