// Package version holds build version information, overridable at link time
// via -ldflags "-X ...version.Version=v1.2.3".
package version

// Version is the application version reported by the system endpoints.
var Version = "dev"
