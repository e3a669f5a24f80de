// Package tokenizer estimates how many tokens a language model assigns to text.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// ErrUnavailable is returned by counters that cannot count tokens in this environment.
var ErrUnavailable = errors.New("tokenizer unavailable")

// Config captures tokenizer selection parameters.
type Config struct {
	Enabled bool
	Model   string
}

// EncodingLoader resolves the tiktoken encoding used for a model name.
type EncodingLoader func(model string) (*tiktoken.Tiktoken, error)

const (
	// DefaultModel is the reference model whose encoding is used when none is configured.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter probes for a usable tokenizer and returns it.
// When token counting is disabled or no encoding can be loaded, the returned
// Counter reports ErrUnavailable instead of failing the run.
func NewCounter(cfg Config, logger *zap.Logger) Counter {
	return newCounterWithLoader(cfg, tiktoken.EncodingForModel, logger)
}

func newCounterWithLoader(cfg Config, loader EncodingLoader, logger *zap.Logger) Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	if !cfg.Enabled {
		logger.Debug("token counting disabled")
		return Unavailable(model)
	}

	encoding, encodingError := loader(strings.ToLower(model))
	if encodingError == nil && encoding != nil {
		return encodingCounter{model: model, encoding: encoding}
	}
	logger.Debug("model encoding not available, trying fallback", zap.String("model", model), zap.Error(encodingError))

	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil || fallback == nil {
		logger.Debug("tokenizer unavailable", zap.Error(fallbackError))
		return Unavailable(model)
	}
	return encodingCounter{model: model, encoding: fallback}
}

type unavailableCounter struct {
	name string
}

// Unavailable returns a Counter that never counts and always reports ErrUnavailable.
func Unavailable(name string) Counter {
	return unavailableCounter{name: name}
}

func (counter unavailableCounter) Name() string {
	return counter.name
}

func (counter unavailableCounter) CountString(string) (int, error) {
	return 0, fmt.Errorf("%s: %w", counter.name, ErrUnavailable)
}
