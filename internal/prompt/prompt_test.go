package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	variants := Variants()
	require.Len(t, variants, 4)

	t.Run("names are stable and ordered", func(t *testing.T) {
		names := make([]string, 0, len(variants))
		for _, v := range variants {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{"system_prompt", "system_prompt1", "system_prompt2", "system_prompt3"}, names)
	})

	t.Run("every variant has text", func(t *testing.T) {
		for _, v := range variants {
			assert.NotEmpty(t, v.Text, "prompt %s", v.Name)
		}
	})

	t.Run("variants are distinct", func(t *testing.T) {
		seen := map[string]string{}
		for _, v := range variants {
			prev, dup := seen[v.Text]
			require.False(t, dup, "prompt %s duplicates %s", v.Name, prev)
			seen[v.Text] = v.Name
		}
	})
}
