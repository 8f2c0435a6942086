package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text passes through unchanged",
			raw:  "YES – the sock is light and graspable",
			want: "YES – the sock is light and graspable",
		},
		{
			name: "top-level JSON string unwraps",
			raw:  `"NO – the knife is sharp"`,
			want: "NO – the knife is sharp",
		},
		{
			name: "generated_text as string",
			raw:  `[{"generated_text":"YES – small toy car"}]`,
			want: "YES – small toy car",
		},
		{
			name: "generated_text as string without array wrapper",
			raw:  `{"generated_text":"NO – too heavy"}`,
			want: "NO – too heavy",
		},
		{
			name: "multi-turn picks last string content",
			raw:  `[{"generated_text":[{"role":"system","content":"prompt"},{"role":"assistant","content":"YES – within limits"}]}]`,
			want: "YES – within limits",
		},
		{
			name: "multi-turn scans backward past chunkless turns",
			raw:  `[{"generated_text":[{"role":"assistant","content":"first answer"},{"role":"assistant","content":[{"type":"image"}]}]}]`,
			want: "first answer",
		},
		{
			name: "chunk with text field",
			raw:  `[{"generated_text":[{"role":"assistant","content":[{"type":"text","text":"no pick, cable is connected"}]}]}]`,
			want: "no pick, cable is connected",
		},
		{
			name: "chunk with nested content field",
			raw:  `[{"generated_text":[{"role":"assistant","content":[{"type":"text","content":"pick: red sock"}]}]}]`,
			want: "pick: red sock",
		},
		{
			name: "turns without any string fall back to turn rendering",
			raw:  `[{"generated_text":[{"role":"assistant","content":[{"type":"image"}]}]}]`,
			want: `[{"role":"assistant","content":[{"type":"image"}]}]`,
		},
		{
			name: "unknown object falls back to raw rendering",
			raw:  `{"choices":[{"message":{"content":"hi"}}]}`,
			want: `{"choices":[{"message":{"content":"hi"}}]}`,
		},
		{
			name: "empty array falls back to raw rendering",
			raw:  `[]`,
			want: `[]`,
		},
		{
			name: "non-ASCII survives extraction",
			raw:  `[{"generated_text":"ja, das Objekt ist greifbar — größenkonform"}]`,
			want: "ja, das Objekt ist greifbar — größenkonform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text([]byte(tt.raw)))
		})
	}
}
