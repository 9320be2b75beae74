// Package version exposes build-time version information.
// Values are injected via -ldflags at release build time.
package version

import "runtime"

var (
	// GitRelease is the semantic version or tag of this build.
	GitRelease = "dev"

	// GitCommit is the short commit hash of this build.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of this build.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version used for this build.
	GoInfo = runtime.Version()
)
