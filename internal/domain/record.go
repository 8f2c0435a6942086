package domain

import "strings"

// Record is one benchmark result: a single (model, prompt, image) evaluation.
// Records are append-only and never mutated after write. Field names are the
// aggregate JSONL schema shared by every runner process.
type Record struct {
	Timestamp    string `json:"timestamp"`
	Model        string `json:"model"`
	PromptName   string `json:"prompt_name"`
	Image        string `json:"image"`
	ResponseText string `json:"response_text"`
}

// IsError reports whether the record carries an error placeholder instead of
// generated text. Error placeholders always start with the "ERROR" tag.
func (r *Record) IsError() bool {
	return strings.HasPrefix(r.ResponseText, "ERROR")
}

// Prompt is a named system-prompt variant. The set of variants is fixed at
// process start and shared by every model run.
type Prompt struct {
	Name string
	Text string
}
