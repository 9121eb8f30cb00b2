// Package buildconfig exposes values injected at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/dsfusion/internal/buildconfig.version=v1.2.0"
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// String renders version and commit for banners and the version command.
func String() string {
	return version + " (" + commit + ")"
}

// VersionInfo returns full version information.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
