// Package version reports build information for gofetch.
//
// Version, git commit, branch and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gofetch/version.Version=1.0.0"
package version
