// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// ErrUnavailable indicates that no clipboard mechanism exists in this environment.
var ErrUnavailable = errors.New("clipboard unavailable")

const (
	darwinPlatform      = "darwin"
	darwinCopyUtility   = "pbcopy"
	unsupportedLibrary  = "the clipboard library has no backend on this system"
	missingUtilityError = "%s not found in PATH"
)

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Probe selects the clipboard mechanism for the running platform.
func Probe(logger *zap.Logger) Copier {
	return Select(runtime.GOOS, exec.LookPath, !clipboard.Unsupported, logger)
}

// Select chooses a Copier for platform.
// macOS uses the pbcopy utility; every other platform uses the clipboard
// library when it reports support. Anything else yields an unavailable Copier.
func Select(platform string, lookPath func(string) (string, error), librarySupported bool, logger *zap.Logger) Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if platform == darwinPlatform {
		utilityPath, lookupError := lookPath(darwinCopyUtility)
		if lookupError != nil {
			logger.Debug("clipboard utility missing", zap.String("utility", darwinCopyUtility), zap.Error(lookupError))
			return Unavailable(fmt.Sprintf(missingUtilityError, darwinCopyUtility))
		}
		logger.Debug("using clipboard utility", zap.String("path", utilityPath))
		return NewCommandCopier(utilityPath)
	}
	if !librarySupported {
		logger.Debug("clipboard library unsupported", zap.String("platform", platform))
		return Unavailable(unsupportedLibrary)
	}
	logger.Debug("using clipboard library", zap.String("platform", platform))
	return NewService()
}

type unavailableCopier struct {
	reason string
}

// Unavailable returns a Copier whose Copy always fails with ErrUnavailable.
func Unavailable(reason string) Copier {
	return unavailableCopier{reason: reason}
}

func (copier unavailableCopier) Copy(string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, copier.reason)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = (*CommandCopier)(nil)
	_ Copier = unavailableCopier{}
)
