// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the user-facing application name.
const AppName = "ScatterForge"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns the formatted version string, e.g. "ScatterForge v0.1.0".
func String() string {
	return fmt.Sprintf("%s v%s", AppName, Version)
}

// Provenance returns software provenance fields for embedding in exported
// figures, so a published plot records what produced it.
func Provenance() map[string]string {
	return map[string]string{
		"software":   AppName,
		"version":    Version,
		"go_version": runtime.Version(),
		"commit":     GitCommit,
	}
}
