// Package format renders resolved files as fenced, path-annotated prompt blocks.
package format

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/promptcopy/internal/types"
	"github.com/temirov/promptcopy/internal/utils"
)

const (
	blockTemplate             = "---\n\nFile path: %s\n\n```%s\n%s\n```\n```"
	readErrorContentFormat    = "Error reading file %s: %v"
	warningDecodeSkipFormat   = "Skipping file %s: %v"
	debugSkipExtensionMessage = "skipping derived file"
)

// DefaultSkipExtensions lists derived-cache extensions that never contribute content.
var DefaultSkipExtensions = []string{".pyc", ".pyo", ".pyd", ".class", ".o", ".obj"}

// Formatter renders files relative to a fixed working directory.
type Formatter struct {
	workingDirectory string
	languages        *LanguageTable
	skipExtensions   map[string]struct{}
	logger           *zap.Logger
}

// Options configures a Formatter.
type Options struct {
	WorkingDirectory string
	Languages        *LanguageTable
	ExtraSkip        []string
	Logger           *zap.Logger
}

// NewFormatter builds a Formatter. A nil Languages table selects the built-in definitions.
func NewFormatter(options Options) (*Formatter, error) {
	languages := options.Languages
	if languages == nil {
		defaultTable, tableError := DefaultLanguageTable()
		if tableError != nil {
			return nil, tableError
		}
		languages = defaultTable
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	skipExtensions := make(map[string]struct{}, len(DefaultSkipExtensions)+len(options.ExtraSkip))
	for _, extension := range append(append([]string{}, DefaultSkipExtensions...), options.ExtraSkip...) {
		if normalized := normalizeExtension(extension); normalized != "" {
			skipExtensions[normalized] = struct{}{}
		}
	}

	return &Formatter{
		workingDirectory: options.WorkingDirectory,
		languages:        languages,
		skipExtensions:   skipExtensions,
		logger:           logger,
	}, nil
}

// Format reads path and returns its rendered block.
// The boolean is false when the file contributes nothing: a skip-listed
// extension, empty content, or bytes that are not valid UTF-8. Other read
// failures still produce a block whose content describes the failure.
func (formatter *Formatter) Format(path string) (string, bool) {
	if formatter.isSkipped(path) {
		formatter.logger.Debug(debugSkipExtensionMessage, zap.String("path", path))
		return "", false
	}

	record := types.FileRecord{
		DisplayPath: utils.DisplayPath(path, formatter.workingDirectory),
		Language:    formatter.languages.LanguageForFile(path),
	}

	data, readError := os.ReadFile(path)
	if readError != nil {
		record.Content = fmt.Sprintf(readErrorContentFormat, path, readError)
		return RenderBlock(record), true
	}

	content, decodeError := utils.DecodeText(data)
	if decodeError != nil {
		if errors.Is(decodeError, utils.ErrInvalidEncoding) {
			formatter.logger.Warn(fmt.Sprintf(warningDecodeSkipFormat, path, decodeError))
			return "", false
		}
		record.Content = fmt.Sprintf(readErrorContentFormat, path, decodeError)
		return RenderBlock(record), true
	}
	if content == "" {
		return "", false
	}

	record.Content = content
	return RenderBlock(record), true
}

// RenderBlock lays out a record as a separator rule, a path line and a fenced code block.
func RenderBlock(record types.FileRecord) string {
	return fmt.Sprintf(blockTemplate, record.DisplayPath, record.Language, record.Content)
}

func (formatter *Formatter) isSkipped(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	if extension == "" {
		return false
	}
	_, skipped := formatter.skipExtensions[extension]
	return skipped
}
