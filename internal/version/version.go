package version

import "runtime"

// Build information set via ldflags at compile time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// BuildInfo is served on /api/version.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build information of the running binary.
func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
