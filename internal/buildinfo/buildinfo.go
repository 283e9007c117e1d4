// Package buildinfo holds version information injected at build time via
// ldflags, e.g. -X github.com/codetray-io/codetray/internal/buildinfo.Version=v0.3.0.
package buildinfo

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
