// Package resolve expands user patterns into an ordered list of regular files.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"

	"github.com/temirov/promptcopy/internal/utils"
)

// ErrNoMatches indicates that a pattern matched no existing path.
var ErrNoMatches = errors.New("no files matched pattern")

const (
	globMetaCharacters          = "*?[{"
	escapableCharacters         = "*?[]{}\\"
	warningNoMatchesFormat      = "Warning: no files matched pattern %q"
	warningInvalidPatternFormat = "Warning: invalid pattern %q: %v"
	warningAccessPathFormat     = "Warning: error accessing path %s: %v"
	warningGitignoreLoadFormat  = "Warning: could not parse %s: %v"
)

// Options configures a Resolver.
type Options struct {
	// WorkingDirectory anchors relative patterns. Empty means the process working directory.
	WorkingDirectory string
	// UseGitignore skips paths excluded by the root .gitignore of each walked directory.
	UseGitignore bool
	Logger       *zap.Logger
}

// Resolver expands glob patterns and directories into regular files.
type Resolver struct {
	workingDirectory string
	useGitignore     bool
	logger           *zap.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(options Options) *Resolver {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		workingDirectory: options.WorkingDirectory,
		useGitignore:     options.UseGitignore,
		logger:           logger,
	}
}

// Resolve returns absolute paths of every regular file reachable from patterns.
// Patterns are processed in order; matches of one glob and files inside a
// directory are ordered lexically. A path reached twice is kept at its first
// position. Patterns that match nothing are reported and skipped.
func (resolver *Resolver) Resolve(patterns []string) []string {
	seen := make(map[string]struct{})
	var files []string
	appendFile := func(path string) {
		if _, duplicate := seen[path]; duplicate {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		matches, expandError := resolver.expandPattern(pattern)
		if expandError != nil {
			if errors.Is(expandError, ErrNoMatches) {
				resolver.logger.Warn(fmt.Sprintf(warningNoMatchesFormat, pattern))
			} else {
				resolver.logger.Warn(fmt.Sprintf(warningInvalidPatternFormat, pattern, expandError))
			}
			continue
		}
		for _, match := range matches {
			info, statError := os.Stat(match)
			if statError != nil {
				resolver.logger.Warn(fmt.Sprintf(warningAccessPathFormat, match, statError))
				continue
			}
			switch {
			case info.IsDir():
				for _, nested := range resolver.collectDirectory(match) {
					appendFile(nested)
				}
			case info.Mode().IsRegular():
				appendFile(match)
			default:
				resolver.logger.Debug("skipping non-regular path", zap.String("path", match))
			}
		}
	}
	return files
}

// expandPattern returns the sorted absolute paths matching pattern.
// An existing path is taken literally even when its name holds glob
// metacharacters; only patterns naming nothing on disk are globbed.
func (resolver *Resolver) expandPattern(pattern string) ([]string, error) {
	literalPath := resolver.anchorLiteral(pattern)
	if _, statError := os.Stat(literalPath); statError == nil {
		return []string{literalPath}, nil
	}
	if !strings.ContainsAny(pattern, globMetaCharacters) {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, pattern)
	}

	matches, globError := doublestar.FilepathGlob(resolver.anchor(pattern))
	if globError != nil {
		return nil, globError
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, pattern)
	}
	absoluteMatches := make([]string, 0, len(matches))
	for _, match := range matches {
		absoluteMatch, absoluteError := filepath.Abs(match)
		if absoluteError != nil {
			return nil, fmt.Errorf("resolve %s: %w", match, absoluteError)
		}
		absoluteMatches = append(absoluteMatches, absoluteMatch)
	}
	sort.Strings(absoluteMatches)
	return absoluteMatches, nil
}

// collectDirectory walks root and returns its regular files in lexical order.
func (resolver *Resolver) collectDirectory(root string) []string {
	var matcher gitignore.IgnoreMatcher
	if resolver.useGitignore {
		matcher = resolver.loadGitignore(root)
	}

	var files []string
	walkError := filepath.WalkDir(root, func(walkedPath string, entry fs.DirEntry, accessError error) error {
		if accessError != nil {
			resolver.logger.Warn(fmt.Sprintf(warningAccessPathFormat, walkedPath, accessError))
			if entry != nil && entry.IsDir() && walkedPath != root {
				return filepath.SkipDir
			}
			return nil
		}
		if walkedPath == root {
			return nil
		}
		if resolver.useGitignore {
			if entry.IsDir() && entry.Name() == utils.GitDirectoryName {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.Match(walkedPath, entry.IsDir()) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if entry.IsDir() {
			return nil
		}
		if isRegularFile(walkedPath, entry) {
			files = append(files, walkedPath)
		}
		return nil
	})
	if walkError != nil {
		resolver.logger.Warn(fmt.Sprintf(warningAccessPathFormat, root, walkError))
	}
	return files
}

func (resolver *Resolver) loadGitignore(root string) gitignore.IgnoreMatcher {
	gitignorePath := filepath.Join(root, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitignorePath); statError != nil {
		return nil
	}
	matcher, parseError := gitignore.NewGitIgnore(gitignorePath, root)
	if parseError != nil {
		resolver.logger.Warn(fmt.Sprintf(warningGitignoreLoadFormat, gitignorePath, parseError))
		return nil
	}
	return matcher
}

// anchor joins a relative glob pattern onto the escaped working directory.
func (resolver *Resolver) anchor(pattern string) string {
	if filepath.IsAbs(pattern) || resolver.workingDirectory == "" {
		return pattern
	}
	return filepath.Join(escapeMeta(resolver.workingDirectory), pattern)
}

// anchorLiteral returns the cleaned absolute form of a literal path.
func (resolver *Resolver) anchorLiteral(path string) string {
	if !filepath.IsAbs(path) && resolver.workingDirectory != "" {
		path = filepath.Join(resolver.workingDirectory, path)
	}
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return filepath.Clean(path)
	}
	return absolutePath
}

func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, statError := os.Stat(path)
	return statError == nil && info.Mode().IsRegular()
}

// escapeMeta escapes glob metacharacters so a directory name is matched literally.
func escapeMeta(path string) string {
	if runtime.GOOS == "windows" {
		return path
	}
	var builder strings.Builder
	for _, character := range path {
		if strings.ContainsRune(escapableCharacters, character) {
			builder.WriteRune('\\')
		}
		builder.WriteRune(character)
	}
	return builder.String()
}
