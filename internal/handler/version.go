package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Set with -ldflags "-X github.com/osse101/habitquest/internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// HandleVersion returns version information about the application
// @Summary Build version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	info := buildVersionInfo()
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersionInfo prefers ldflags, then VERSION, then the VCS stamp the go tool embeds
func buildVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if info.Version == "dev" || info.Version == "" {
		if env := os.Getenv("VERSION"); env != "" {
			info.Version = env
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}
