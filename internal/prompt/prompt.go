// Package prompt assembles the fixed preamble and formatted file blocks into one prompt.
package prompt

import "strings"

// Preamble opens every prompt. It is fixed text and never templated.
const Preamble = `You are a senior software engineer acting as a code review consultant. The user is sharing source files from their project so that you can help them understand, review, and improve the code.

Read every file below carefully before answering. Keep track of how the files relate to each other: shared types, call sites, configuration, and tests. When the user asks a question, ground your answer in the code that was provided and cite the file path for any code you refer to.

When you suggest changes, explain what is wrong and why the change fixes it, and show the complete updated code for each function or block you modify so it can be applied directly. Point out bugs, edge cases, security issues, and maintainability problems you notice even if the user did not ask about them, but keep the focus on their question.

If something needed to answer is missing from the files, say exactly what is missing instead of guessing.`

const blockSeparator = "\n\n"

// Prompt is the assembled text together with the number of file blocks it contains.
type Prompt struct {
	Text   string
	Blocks int
}

// HasContent reports whether at least one file block follows the preamble.
func (prompt Prompt) HasContent() bool {
	return prompt.Blocks > 0
}

// Assemble joins the preamble with blocks in order, separated by blank lines.
// Empty blocks are dropped.
func Assemble(blocks []string) Prompt {
	parts := make([]string, 0, len(blocks)+1)
	parts = append(parts, Preamble)
	for _, block := range blocks {
		if block == "" {
			continue
		}
		parts = append(parts, block)
	}
	return Prompt{
		Text:   strings.Join(parts, blockSeparator),
		Blocks: len(parts) - 1,
	}
}
