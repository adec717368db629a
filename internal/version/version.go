// Package version reports build information stamped in via ldflags:
//
//	go build -ldflags "-X github.com/example/demonlist/internal/version.Commit=$(git rev-parse HEAD)"
package version

import "fmt"

var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the human-readable version used by the CLI.
func String() string {
	return fmt.Sprintf("demonlist dev (commit: %s, built: %s)", Short(), BuildTime)
}

// Short returns the abbreviated commit hash, as reported by the health endpoint.
func Short() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
