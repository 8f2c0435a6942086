// Package extract normalizes heterogeneous inference results into a single
// response string. Providers return one of three shapes: a plain string, a
// single generated text, or a multi-turn conversation whose turns carry
// either string content or a list of content chunks. The chain tries each
// shape in order and falls back to the raw rendering when none matches.
package extract

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Text extracts the response text from a raw pipeline result. It never
// returns an error: anything that goes wrong during extraction is folded
// into an "ERROR extracting text" placeholder so the caller always has a
// string to record.
func Text(raw []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("ERROR extracting text: %v", r)
		}
	}()

	// Not JSON at all: the result already is the response.
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}

	result := gjson.ParseBytes(raw)
	if result.Type == gjson.String {
		return result.String()
	}

	// A leading array unwraps to its first element.
	first := result
	if result.IsArray() {
		arr := result.Array()
		if len(arr) == 0 {
			return result.Raw
		}
		first = arr[0]
	}

	generated := first.Get("generated_text")
	switch {
	case generated.Type == gjson.String:
		return generated.String()
	case generated.IsArray():
		if s, ok := lastTurnText(generated); ok {
			return s
		}
		return generated.Raw
	}

	return result.Raw
}

// lastTurnText scans conversation turns from the most recent backward and
// returns the first string content it finds, either directly on the turn or
// inside one of its content chunks.
func lastTurnText(turns gjson.Result) (string, bool) {
	arr := turns.Array()
	for i := len(arr) - 1; i >= 0; i-- {
		content := arr[i].Get("content")
		if content.Type == gjson.String {
			return content.String(), true
		}
		if content.IsArray() {
			for _, chunk := range content.Array() {
				if t := chunk.Get("text"); t.Type == gjson.String {
					return t.String(), true
				}
				if c := chunk.Get("content"); c.Type == gjson.String {
					return c.String(), true
				}
			}
		}
	}
	return "", false
}
