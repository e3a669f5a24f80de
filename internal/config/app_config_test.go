package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/promptcopy/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func writeConfig(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	for _, key := range environmentKeys {
		t.Setenv(environmentVariableName(key), "")
		os.Unsetenv(environmentVariableName(key))
	}
	return homeDir
}

func environmentVariableName(key string) string {
	return utils.EnvironmentPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name           string
		globalContent  string
		localContent   string
		explicitName   string
		explicitBody   string
		expectSettings Settings
	}{
		{
			name: "defaults_without_files",
			expectSettings: Settings{
				TokensEnabled:  true,
				TokenModel:     "gpt-4o",
				SkipExtensions: []string{},
			},
		},
		{
			name:          "local_overrides_global",
			globalContent: "tokens:\n  enabled: false\n  model: gpt-4\nstrict: true\n",
			localContent:  "tokens:\n  model: gpt-3.5-turbo\npaths:\n  use_gitignore: true\nskip_extensions: [.lock, .lock, .map]\n",
			expectSettings: Settings{
				TokensEnabled:  false,
				TokenModel:     "gpt-3.5-turbo",
				UseGitignore:   true,
				SkipExtensions: []string{".lock", ".map"},
				Strict:         true,
			},
		},
		{
			name:          "explicit_file_replaces_local",
			globalContent: "tokens:\n  model: gpt-4\n",
			localContent:  "strict: true\n",
			explicitName:  "custom.yaml",
			explicitBody:  "tokens:\n  enabled: false\n",
			expectSettings: Settings{
				TokensEnabled:  false,
				TokenModel:     "gpt-4",
				SkipExtensions: []string{},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := isolateHome(t)
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				writeConfig(t, filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfig(t, filepath.Join(workingDir, utils.LocalConfigFileName), testCase.localContent)
			}
			if testCase.explicitName != "" {
				writeConfig(t, filepath.Join(workingDir, testCase.explicitName), testCase.explicitBody)
			}

			loaded, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitName,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			settings := loaded.Settings()
			if !reflect.DeepEqual(settings, testCase.expectSettings) {
				t.Fatalf("unexpected settings:\n got %+v\nwant %+v", settings, testCase.expectSettings)
			}
		})
	}
}

func TestLoadApplicationConfigurationEnvironmentOverridesFiles(t *testing.T) {
	isolateHome(t)
	workingDir := t.TempDir()
	writeConfig(t, filepath.Join(workingDir, utils.LocalConfigFileName), "tokens:\n  enabled: true\n  model: gpt-4\n")
	t.Setenv("PROMPTCOPY_TOKENS_ENABLED", "false")
	t.Setenv("PROMPTCOPY_SKIP_EXTENSIONS", ".snap,.bin")

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	settings := loaded.Settings()
	if settings.TokensEnabled {
		t.Fatalf("expected environment to disable tokens")
	}
	if settings.TokenModel != "gpt-4" {
		t.Fatalf("expected model from file, got %q", settings.TokenModel)
	}
	if !reflect.DeepEqual(settings.SkipExtensions, []string{".snap", ".bin"}) {
		t.Fatalf("unexpected skip extensions %v", settings.SkipExtensions)
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	isolateHome(t)
	workingDir := t.TempDir()
	writeConfig(t, filepath.Join(workingDir, utils.LocalConfigFileName), "tokens: [unterminated\n")
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestMergeKeepsBaseWhenOverrideUnset(t *testing.T) {
	base := ApplicationConfiguration{
		Tokens: TokenConfiguration{Enabled: boolPointer(false), Model: "gpt-4"},
		Strict: boolPointer(true),
	}
	merged := base.Merge(ApplicationConfiguration{})
	if merged.Tokens.Enabled == nil || *merged.Tokens.Enabled {
		t.Fatalf("expected tokens to stay disabled")
	}
	if merged.Tokens.Model != "gpt-4" {
		t.Fatalf("expected model to be kept, got %q", merged.Tokens.Model)
	}
	if merged.Strict == nil || !*merged.Strict {
		t.Fatalf("expected strict to stay enabled")
	}
}
