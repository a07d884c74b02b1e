// Package version carries build identification, stamped via -ldflags.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line build description.
func String() string {
	return fmt.Sprintf("losdecomp %s (%s, built %s)", Version, GitSHA, BuildTime)
}
