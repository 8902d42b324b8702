// Package version holds the build version, overridden at release time via
// -ldflags "-X github.com/dirscout/dirscout/pkg/version.Version=x.y.z".
package version

// Version is the current dirscout version.
var Version = "dev"
