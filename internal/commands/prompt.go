// Package commands wires the resolver, formatter and assembler into one prompt build.
package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/promptcopy/internal/format"
	"github.com/temirov/promptcopy/internal/prompt"
	"github.com/temirov/promptcopy/internal/resolve"
)

// PromptOptions configures BuildPrompt.
type PromptOptions struct {
	WorkingDirectory string
	UseGitignore     bool
	SkipExtensions   []string
	Logger           *zap.Logger
}

// BuildPrompt resolves patterns, formats every resolved file in order and
// assembles the result behind the fixed preamble.
func BuildPrompt(patterns []string, options PromptOptions) (prompt.Prompt, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	formatter, formatterError := format.NewFormatter(format.Options{
		WorkingDirectory: options.WorkingDirectory,
		ExtraSkip:        options.SkipExtensions,
		Logger:           logger,
	})
	if formatterError != nil {
		return prompt.Prompt{}, formatterError
	}
	resolver := resolve.NewResolver(resolve.Options{
		WorkingDirectory: options.WorkingDirectory,
		UseGitignore:     options.UseGitignore,
		Logger:           logger,
	})

	files := resolver.Resolve(patterns)
	logger.Debug("resolved files", zap.Int("count", len(files)))

	blocks := make([]string, 0, len(files))
	for _, filePath := range files {
		if block, ok := formatter.Format(filePath); ok {
			blocks = append(blocks, block)
		}
	}
	return prompt.Assemble(blocks), nil
}
