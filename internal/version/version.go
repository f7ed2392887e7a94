// Package version holds the build-time version string printed by
// --version and by the CLI usage banner.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
