package output

import (
	"io"

	"github.com/gripbench/gripbench/internal/domain"
)

// TextWriter prints benchmark records as single styled lines for
// interactive use. With plain set, styling is suppressed (non-TTY stdout).
type TextWriter struct {
	w     io.Writer
	plain bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, plain bool) *TextWriter {
	return &TextWriter{w: w, plain: plain}
}

// Write outputs one record as a styled line, mirroring the live echo of the
// NDJSON format.
func (w *TextWriter) Write(rec *domain.Record) error {
	tag := "[" + rec.PromptName + "]"
	img := "[" + rec.Image + "]"
	text := rec.ResponseText

	if !w.plain {
		tag = Styles.PromptTag.Render(tag)
		img = Styles.Image.Render(img)
		if rec.IsError() {
			text = Styles.Error.Render(text)
		}
		line := tag + " " + Styles.Model.Render(rec.Model) + " " + img + ": " + text + "\n"
		_, err := io.WriteString(w.w, line)
		return err
	}

	_, err := io.WriteString(w.w, tag+" "+rec.Model+" "+img+": "+text+"\n")
	return err
}
