// Package utils contains helpers shared across promptcopy packages.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	displayPathPrefix = "./"
	parentSegment     = ".."
)

// DisplayPath renders fullPath for a prompt header.
// Paths inside workingDirectory are shown as "./<relative path>" with forward slashes.
// Paths outside it, or paths that cannot be made relative, are shown in absolute form.
func DisplayPath(fullPath, workingDirectory string) string {
	absolutePath, absoluteError := filepath.Abs(fullPath)
	if absoluteError != nil {
		return filepath.Clean(fullPath)
	}
	if workingDirectory == "" {
		return absolutePath
	}
	absoluteRoot, rootError := filepath.Abs(workingDirectory)
	if rootError != nil {
		return absolutePath
	}

	relativePath, relativeError := filepath.Rel(absoluteRoot, absolutePath)
	if relativeError != nil {
		return absolutePath
	}
	if relativePath == parentSegment || strings.HasPrefix(relativePath, parentSegment+string(filepath.Separator)) {
		return absolutePath
	}
	return displayPathPrefix + filepath.ToSlash(relativePath)
}
