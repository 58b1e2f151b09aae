// Package version holds build identity, overridable via -ldflags.
package version

var (
	AppName   = "larry"
	Version   = "dev"
	BuildDate = "unknown"
)
