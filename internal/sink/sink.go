// Package sink delivers an assembled prompt: token count, clipboard write, confirmation.
package sink

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/promptcopy/internal/prompt"
	"github.com/temirov/promptcopy/internal/services/clipboard"
	"github.com/temirov/promptcopy/internal/tokenizer"
	"github.com/temirov/promptcopy/internal/types"
)

const (
	tokenCountFormat     = "Token count for %s: %d\n"
	copySuccessMessage   = "Prompt copied to clipboard."
	clipboardErrorFormat = "Error: could not copy prompt to clipboard: %v"
	noContentMessage     = "No file content was collected; copying the preamble only."
)

// Sink writes console messages to output and the prompt to the clipboard.
type Sink struct {
	counter tokenizer.Counter
	copier  clipboard.Copier
	output  io.Writer
	logger  *zap.Logger
}

// New constructs a Sink. A nil counter disables token counting.
func New(counter tokenizer.Counter, copier clipboard.Copier, output io.Writer, logger *zap.Logger) *Sink {
	if counter == nil {
		counter = tokenizer.Unavailable(tokenizer.DefaultModel)
	}
	if copier == nil {
		copier = clipboard.Unavailable("no clipboard configured")
	}
	if output == nil {
		output = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{counter: counter, copier: copier, output: output, logger: logger}
}

// Deliver counts tokens when possible and copies the prompt to the clipboard.
// Failures are reported, never returned; the result describes what happened.
func (sink *Sink) Deliver(assembled prompt.Prompt) types.DeliveryResult {
	result := types.DeliveryResult{
		Blocks:      assembled.Blocks,
		PromptBytes: len(assembled.Text),
		TokenModel:  sink.counter.Name(),
	}
	tokens, countError := sink.counter.CountString(assembled.Text)
	switch {
	case countError == nil:
		result.Tokens = tokens
		result.Counted = true
		fmt.Fprintf(sink.output, tokenCountFormat, sink.counter.Name(), tokens)
	case errors.Is(countError, tokenizer.ErrUnavailable):
	default:
		sink.logger.Debug("token counting failed", zap.Error(countError))
	}

	if !assembled.HasContent() {
		sink.logger.Warn(noContentMessage)
	}

	if copyError := sink.copier.Copy(assembled.Text); copyError != nil {
		result.CopyError = copyError
		sink.logger.Error(fmt.Sprintf(clipboardErrorFormat, copyError))
		return result
	}
	result.Copied = true
	fmt.Fprintln(sink.output, copySuccessMessage)
	return result
}
