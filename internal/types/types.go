// Package types defines the data structures passed between promptcopy stages.
package types

import (
	"fmt"
	"strings"

	"github.com/temirov/promptcopy/internal/utils"
)

const (
	summaryFormat       = "Prompt: %d file block(s), %s"
	summaryTokensFormat = ", %d tokens (%s)"
	summaryCopied       = ", copied"
	summaryNotCopied    = ", not copied"
)

// FileRecord is one file ready to be rendered: its display path, language tag and decoded text.
type FileRecord struct {
	DisplayPath string
	Language    string
	Content     string
}

// DeliveryResult reports what the output sink accomplished for one prompt.
type DeliveryResult struct {
	Blocks      int
	PromptBytes int
	Tokens      int
	TokenModel  string
	Counted     bool
	Copied      bool
	CopyError   error
}

// Summary renders the result as one line, e.g.
// "Prompt: 2 file block(s), 1.5 KiB, 402 tokens (gpt-4o), copied".
func (result DeliveryResult) Summary() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, summaryFormat, result.Blocks, utils.FormatByteCount(result.PromptBytes))
	if result.Counted {
		fmt.Fprintf(&builder, summaryTokensFormat, result.Tokens, result.TokenModel)
	}
	if result.Copied {
		builder.WriteString(summaryCopied)
	} else {
		builder.WriteString(summaryNotCopied)
	}
	return builder.String()
}
