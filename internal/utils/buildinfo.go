package utils

import "runtime/debug"

const (
	unknownVersion      = "unknown"
	develBuildVersion   = "(devel)"
	vcsRevisionSetting  = "vcs.revision"
	vcsModifiedSetting  = "vcs.modified"
	shortRevisionLength = 12
	dirtyRevisionSuffix = "-dirty"
)

// GetApplicationVersion reports the version stamped into the binary: the module
// version for `go install`ed builds, otherwise the VCS revision recorded by
// `go build`, otherwise "unknown".
func GetApplicationVersion() string {
	buildInfo, available := debug.ReadBuildInfo()
	if !available {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if version := buildInfo.Main.Version; version != "" && version != develBuildVersion {
		return version
	}
	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSetting:
			revision = setting.Value
		case vcsModifiedSetting:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += dirtyRevisionSuffix
	}
	return revision
}
