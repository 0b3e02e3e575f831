package audiotag

import "runtime/debug"

// Version is the semantic version of the audiotag library.
const Version = "0.1.0"

// BuildInfo describes the binary that links audiotag.
type BuildInfo struct {
	Version   string
	Commit    string // vcs revision, or "unknown"
	BuildTime string // vcs time, or "unknown"
	GoVersion string
}

// GetBuildInfo returns the library version and whatever the Go toolchain
// stamped into the running binary.
//
// Commit and BuildTime can be forced with -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/audiotag.commit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/audiotag.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: "unknown",
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "unknown":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.BuildTime == "unknown":
			info.BuildTime = s.Value
		}
	}
	return info
}

// Variables populated at build time via -ldflags.
var (
	commit    = "unknown"
	buildTime = "unknown"
)
