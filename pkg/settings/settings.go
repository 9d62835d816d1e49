// Package settings holds build metadata and the per-run settings of the
// kvptr CLI, and carries them through contexts.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "kvptr"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Input describes where a command reads its document from.
type Input struct {
	FromStdin bool
	Path      string
}

// Run holds the settings of a single CLI invocation.
type Run struct {
	MinLogLevel int8
	Input       Input
	Output      string
	Indent      int
	InPlace     bool
	ExitOnError bool
}

// NewCliParams returns the defaults for a CLI run: auto output format, two
// space indentation, print to stdout and exit on the first error.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      "auto",
		Indent:      2,
		ExitOnError: true,
	}
}
