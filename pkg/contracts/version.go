package contracts

import (
	"fmt"
	"runtime"
)

// Release identifiers. BuildTime and GitCommit are set with -ldflags.
const (
	Version    = "1.0.0"
	APIVersion = "v1"
)

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is served by GET /api/version.
type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	BuildTime  string `json:"build_time"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// GetVersionInfo describes the running binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		APIVersion: APIVersion,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersionString renders VersionInfo on one line for startup logs.
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("salesdash v%s (api %s, commit %s, built %s, %s, %s)",
		info.Version, info.APIVersion, info.GitCommit, info.BuildTime, info.GoVersion, info.Platform)
}
