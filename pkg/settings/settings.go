// Package settings provides build metadata, per-run parameters, and
// context helpers shared by the shelf CLI and its TUI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "shelf"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
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

// Run holds the parameters of a single invocation after flags and the
// config file have been merged.
type Run struct {
	MinLogLevel  int8
	LogFile      string
	APIBaseURL   string
	AssetBaseURL string
	Interactive  bool
	NoColor      bool
}

// NewCliParams returns the defaults used before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Interactive: true,
	}
}

// LogToTerminal reports whether log lines may be written to stderr.
// The TUI owns the terminal, so interactive runs only log to a file.
func (r *Run) LogToTerminal() bool {
	return !r.Interactive
}
