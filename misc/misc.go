// Package misc holds build identity reported by the CLI.
package misc

// set at build time with -ldflags "-X stylecore/misc.version=... -X stylecore/misc.gitHash=..."
var (
	appName = "stylecore"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
