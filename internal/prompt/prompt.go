// Package prompt holds the fixed set of system-prompt variants evaluated
// against every (model, image) pair. Each variant encodes a different
// output-format contract for the downstream model.
package prompt

import (
	_ "embed"

	"github.com/gripbench/gripbench/internal/domain"
)

//go:embed texts/system_prompt.txt
var baseline string

//go:embed texts/system_prompt1.txt
var strictReply string

//go:embed texts/system_prompt2.txt
var orderedRules string

//go:embed texts/system_prompt3.txt
var debrisPicker string

// Variants returns the prompt set in evaluation order. The returned slice is
// freshly allocated; callers may not mutate the shared texts through it.
func Variants() []domain.Prompt {
	return []domain.Prompt{
		{Name: "system_prompt", Text: baseline},
		{Name: "system_prompt1", Text: strictReply},
		{Name: "system_prompt2", Text: orderedRules},
		{Name: "system_prompt3", Text: debrisPicker},
	}
}
