package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Built   = "unknown"
)

type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
}

func Info() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, Built: Built}
}

// String renders the build info for a --version banner.
func (b BuildInfo) String() string {
	return fmt.Sprintf("version %s, commit %s, built %s", b.Version, b.Commit, b.Built)
}
