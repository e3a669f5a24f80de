// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/promptcopy/internal/commands"
	"github.com/temirov/promptcopy/internal/config"
	"github.com/temirov/promptcopy/internal/services/clipboard"
	"github.com/temirov/promptcopy/internal/sink"
	"github.com/temirov/promptcopy/internal/tokenizer"
	"github.com/temirov/promptcopy/internal/utils"
)

const (
	rootUse              = "promptcopy <pattern> [<pattern> ...]"
	rootShortDescription = "copy source files to the clipboard as one LLM prompt"
	rootLongDescription  = `promptcopy concatenates the files matched by each pattern into a single prompt.
A pattern is a file, a directory (walked recursively) or a glob; ** matches any depth.
Every file is rendered as a fenced block with its path and language, the prompt is
prefixed with a fixed code review preamble, and the result is copied to the clipboard.`
	rootUsageExample = `  # Copy every Python file in the project
  promptcopy '**/*.py'

  # Copy a directory and one file, honouring .gitignore
  promptcopy --gitignore internal cmd/promptcopy/main.go`
	versionTemplate = "promptcopy version: %s\n"

	configFlagName       = "config"
	modelFlagName        = "model"
	noTokensFlagName     = "no-tokens"
	gitignoreFlagName    = "gitignore"
	strictFlagName       = "strict"
	verboseFlagName      = "verbose"
	verboseFlagShorthand = "v"
	versionFlagName      = "version"

	configFlagDescription    = "configuration file (default ./.promptcopy.yaml)"
	modelFlagDescription     = "tokenizer model to use for token counting"
	noTokensFlagDescription  = "do not count tokens"
	gitignoreFlagDescription = "skip files ignored by .gitignore when walking directories"
	strictFlagDescription    = "exit with an error when no content was collected or the clipboard write failed"
	verboseFlagDescription   = "log debug details and a prompt summary"
	versionFlagDescription   = "display application version"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

var (
	// ErrNoContent is returned in strict mode when no file produced a block.
	ErrNoContent = errors.New("no file content was collected")
	// ErrClipboardFailed is returned in strict mode when the prompt was not copied.
	ErrClipboardFailed = errors.New("prompt was not copied to the clipboard")
)

// Dependencies are the collaborators used by a run. Zero values select the
// real working directory, clipboard and tokenizer, and a no-op logger.
// LogLevel, when set, is raised to debug by --verbose.
type Dependencies struct {
	WorkingDirectory string
	Logger           *zap.Logger
	LogLevel         *zap.AtomicLevel
	NewCopier        func(logger *zap.Logger) clipboard.Copier
	NewCounter       func(cfg tokenizer.Config, logger *zap.Logger) tokenizer.Counter
}

type runOptions struct {
	configPath   string
	model        string
	noTokens     bool
	useGitignore bool
	strict       bool
	verbose      bool
	showVersion  bool
}

// Execute runs the promptcopy application with the process arguments.
// level must be the level logger was built with.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger, LogLevel: &level})
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the promptcopy Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var options runOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(command, arguments)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			return run(command, arguments, options, dependencies)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerToggleFlag(flags, &options.noTokens, noTokensFlagName, "", noTokensFlagDescription)
	registerToggleFlag(flags, &options.useGitignore, gitignoreFlagName, "", gitignoreFlagDescription)
	registerToggleFlag(flags, &options.strict, strictFlagName, "", strictFlagDescription)
	registerToggleFlag(flags, &options.verbose, verboseFlagName, verboseFlagShorthand, verboseFlagDescription)
	registerToggleFlag(flags, &options.showVersion, versionFlagName, "", versionFlagDescription)
	return rootCommand
}

func run(command *cobra.Command, patterns []string, options runOptions, dependencies Dependencies) error {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.verbose && dependencies.LogLevel != nil {
		dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
	}

	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings := applyFlagOverrides(command, applicationConfiguration.Settings(), options)
	logger.Debug("effective settings",
		zap.Bool("tokens", settings.TokensEnabled),
		zap.String("model", settings.TokenModel),
		zap.Bool("gitignore", settings.UseGitignore),
		zap.Strings("skip_extensions", settings.SkipExtensions),
		zap.Bool("strict", settings.Strict),
	)

	assembled, buildError := commands.BuildPrompt(patterns, commands.PromptOptions{
		WorkingDirectory: workingDirectory,
		UseGitignore:     settings.UseGitignore,
		SkipExtensions:   settings.SkipExtensions,
		Logger:           logger,
	})
	if buildError != nil {
		return buildError
	}

	newCounter := dependencies.NewCounter
	if newCounter == nil {
		newCounter = tokenizer.NewCounter
	}
	newCopier := dependencies.NewCopier
	if newCopier == nil {
		newCopier = clipboard.Probe
	}
	counter := newCounter(tokenizer.Config{Enabled: settings.TokensEnabled, Model: settings.TokenModel}, logger)
	result := sink.New(counter, newCopier(logger), command.OutOrStdout(), logger).Deliver(assembled)
	logger.Debug(result.Summary())

	if !settings.Strict {
		return nil
	}
	if result.Blocks == 0 {
		return ErrNoContent
	}
	if !result.Copied {
		return fmt.Errorf("%w: %v", ErrClipboardFailed, result.CopyError)
	}
	return nil
}

// applyFlagOverrides lets explicitly set flags win over configured values.
func applyFlagOverrides(command *cobra.Command, settings config.Settings, options runOptions) config.Settings {
	flags := command.Flags()
	if flags.Changed(modelFlagName) {
		settings.TokenModel = options.model
	}
	if flags.Changed(noTokensFlagName) {
		settings.TokensEnabled = !options.noTokens
	}
	if flags.Changed(gitignoreFlagName) {
		settings.UseGitignore = options.useGitignore
	}
	if flags.Changed(strictFlagName) {
		settings.Strict = options.strict
	}
	return settings
}
