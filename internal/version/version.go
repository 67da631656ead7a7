// Package version provides version information for the tfstacks CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`
}

// TerraformInfo contains terraform binary version information.
type TerraformInfo struct {
	// Version is the terraform binary version.
	Version string `json:"version"`

	// Path is the path to the terraform binary.
	Path string `json:"path"`

	// Found indicates if the terraform binary was found.
	Found bool `json:"found"`

	// Message provides additional information when detection failed.
	Message string `json:"message,omitempty"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("tfstacks:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}

// String returns a human-readable terraform binary info string.
func (t TerraformInfo) String() string {
	if !t.Found {
		msg := t.Message
		if msg == "" {
			msg = "not found"
		}
		return fmt.Sprintf("  Binary Version: %s\n  Binary Path:    -", msg)
	}

	return fmt.Sprintf("  Binary Version: %s\n  Binary Path:    %s", t.Version, t.Path)
}

// FullVersionString returns complete version information including terraform.
func FullVersionString(info Info, tfInfo TerraformInfo) string {
	return fmt.Sprintf("%s\n\nTerraform:\n%s", info.String(), tfInfo.String())
}
