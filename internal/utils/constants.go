package utils

// Application identity and configuration locations.
const (
	// ApplicationName is the executable and configuration namespace.
	ApplicationName = "promptcopy"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = "." + ApplicationName
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = "." + ApplicationName + ".yaml"
	// EnvironmentPrefix prefixes environment variables that override configuration.
	EnvironmentPrefix = "PROMPTCOPY"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
)

// Messages shared by the entry point.
const (
	// LoggerInitializationFailedMessageFormat reports that the logger could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal execution errors.
	ApplicationExecutionFailedMessage = ApplicationName + " failed"
)
