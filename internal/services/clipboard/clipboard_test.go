package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func lookPathFound(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func lookPathMissing(string) (string, error) {
	return "", exec.ErrNotFound
}

func TestSelectChoosesMechanismPerPlatform(t *testing.T) {
	testCases := []struct {
		name             string
		platform         string
		lookPath         func(string) (string, error)
		librarySupported bool
		expectCommand    bool
		expectService    bool
		expectDisabled   bool
	}{
		{
			name:          "darwin_uses_pbcopy",
			platform:      "darwin",
			lookPath:      lookPathFound,
			expectCommand: true,
		},
		{
			name:           "darwin_without_pbcopy_is_unavailable",
			platform:       "darwin",
			lookPath:       lookPathMissing,
			expectDisabled: true,
		},
		{
			name:             "linux_uses_library",
			platform:         "linux",
			lookPath:         lookPathMissing,
			librarySupported: true,
			expectService:    true,
		},
		{
			name:             "linux_without_backend_is_unavailable",
			platform:         "linux",
			lookPath:         lookPathFound,
			librarySupported: false,
			expectDisabled:   true,
		},
		{
			name:             "windows_uses_library",
			platform:         "windows",
			lookPath:         lookPathMissing,
			librarySupported: true,
			expectService:    true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			copier := Select(testCase.platform, testCase.lookPath, testCase.librarySupported, nil)
			switch typed := copier.(type) {
			case *CommandCopier:
				if !testCase.expectCommand {
					t.Fatalf("unexpected command copier")
				}
				if typed.executable != "/usr/bin/pbcopy" {
					t.Fatalf("expected pbcopy executable, got %q", typed.executable)
				}
			case *Service:
				if !testCase.expectService {
					t.Fatalf("unexpected library service")
				}
			case unavailableCopier:
				if !testCase.expectDisabled {
					t.Fatalf("unexpected unavailable copier")
				}
				if err := copier.Copy("text"); !errors.Is(err, ErrUnavailable) {
					t.Fatalf("expected ErrUnavailable, got %v", err)
				}
			default:
				t.Fatalf("unexpected copier type %T", copier)
			}
		})
	}
}

func TestCommandCopierFeedsStandardInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	destination := filepath.Join(t.TempDir(), "clipboard.txt")
	copier := NewCommandCopier("sh", "-c", "cat > \"$0\"", destination)
	if err := copier.Copy("prompt text\n"); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	written, readError := os.ReadFile(destination)
	if readError != nil {
		t.Fatalf("read destination: %v", readError)
	}
	if string(written) != "prompt text\n" {
		t.Fatalf("unexpected clipboard content %q", string(written))
	}
}

func TestCommandCopierReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	copier := NewCommandCopier("sh", "-c", "echo denied >&2; exit 3")
	err := copier.Copy("text")
	if err == nil {
		t.Fatalf("expected error from failing utility")
	}
	var exitError *exec.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("expected wrapped exit error, got %v", err)
	}
}
