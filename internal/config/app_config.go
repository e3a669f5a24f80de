// Package config loads promptcopy defaults from configuration files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/promptcopy/internal/utils"
)

const (
	tokensEnabledKey  = "tokens.enabled"
	tokensModelKey    = "tokens.model"
	useGitignoreKey   = "paths.use_gitignore"
	skipExtensionsKey = "skip_extensions"
	strictKey         = "strict"

	defaultTokenModel = "gpt-4o"
)

var environmentKeys = []string{tokensEnabledKey, tokensModelKey, useGitignoreKey, skipExtensionsKey, strictKey}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds optional overrides. Nil pointers mean "not set".
type ApplicationConfiguration struct {
	Tokens         TokenConfiguration `mapstructure:"tokens"`
	Paths          PathConfiguration  `mapstructure:"paths"`
	SkipExtensions []string           `mapstructure:"skip_extensions"`
	Strict         *bool              `mapstructure:"strict"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// PathConfiguration controls directory traversal.
type PathConfiguration struct {
	UseGitignore *bool `mapstructure:"use_gitignore"`
}

// Settings are the effective values after defaults are applied.
type Settings struct {
	TokensEnabled  bool
	TokenModel     string
	UseGitignore   bool
	SkipExtensions []string
	Strict         bool
}

// LoadApplicationConfiguration merges, in increasing precedence, the global
// configuration file, the local (or explicit) configuration file, and
// PROMPTCOPY_* environment variables.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, required := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, required)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	environmentConfig, environmentErr := loadEnvironmentConfiguration()
	if environmentErr != nil {
		return ApplicationConfiguration{}, environmentErr
	}
	return merged.Merge(environmentConfig), nil
}

// resolveLocalConfigPath returns the local configuration path and whether it must exist.
func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, bool) {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), false
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, true
	}
	return filepath.Join(workingDirectory, explicitPath), true
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

func loadEnvironmentConfiguration() (ApplicationConfiguration, error) {
	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range environmentKeys {
		if bindErr := reader.BindEnv(key); bindErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("bind environment for %s: %w", key, bindErr)
		}
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode environment configuration: %w", decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Paths = result.Paths.merge(override.Paths)
	if len(override.SkipExtensions) > 0 {
		result.SkipExtensions = deduplicate(override.SkipExtensions)
	}
	if override.Strict != nil {
		result.Strict = cloneBool(override.Strict)
	}
	return result
}

// Settings applies built-in defaults to unset values.
func (config ApplicationConfiguration) Settings() Settings {
	settings := Settings{
		TokensEnabled:  true,
		TokenModel:     defaultTokenModel,
		SkipExtensions: append([]string{}, config.SkipExtensions...),
	}
	if config.Tokens.Enabled != nil {
		settings.TokensEnabled = *config.Tokens.Enabled
	}
	if model := strings.TrimSpace(config.Tokens.Model); model != "" {
		settings.TokenModel = model
	}
	if config.Paths.UseGitignore != nil {
		settings.UseGitignore = *config.Paths.UseGitignore
	}
	if config.Strict != nil {
		settings.Strict = *config.Strict
	}
	return settings
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func deduplicate(values []string) []string {
	encountered := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := encountered[trimmed]; exists {
			continue
		}
		encountered[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
