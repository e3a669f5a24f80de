package utils

import (
	"runtime/debug"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestVersionFromBuildInfo(t *testing.T) {
	testCases := []struct {
		name      string
		buildInfo debug.BuildInfo
		expected  string
	}{
		{
			name:      "module_version",
			buildInfo: debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			expected:  "v1.2.3",
		},
		{
			name: "devel_build_uses_revision",
			buildInfo: debug.BuildInfo{
				Main: debug.Module{Version: develBuildVersion},
				Settings: []debug.BuildSetting{
					{Key: vcsRevisionSetting, Value: "0123456789abcdef0123"},
					{Key: vcsModifiedSetting, Value: "false"},
				},
			},
			expected: "0123456789ab",
		},
		{
			name: "modified_tree_is_marked_dirty",
			buildInfo: debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: vcsRevisionSetting, Value: "abc123"},
					{Key: vcsModifiedSetting, Value: "true"},
				},
			},
			expected: "abc123-dirty",
		},
		{
			name:      "nothing_recorded",
			buildInfo: debug.BuildInfo{Main: debug.Module{Version: develBuildVersion}},
			expected:  unknownVersion,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if version := versionFromBuildInfo(&testCase.buildInfo); version != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, version)
			}
		})
	}
}

func TestNewApplicationLoggerFollowsLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := NewApplicationLogger(level)
	if err != nil {
		t.Fatalf("NewApplicationLogger: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be off at info level")
	}
	level.SetLevel(zapcore.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must follow the raised level")
	}
}
