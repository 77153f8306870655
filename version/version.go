package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// Product is the name reported in the User-Agent header and by the CLI.
const Product = "gofetch"

// Info describes the running build.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	GitBranch string    `json:"git_branch,omitempty" yaml:"git_branch,omitempty"`
	BuildTime string    `json:"build_time" yaml:"build_time"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	BuildDate time.Time `json:"build_date" yaml:"build_date"`
	IsRelease bool      `json:"is_release" yaml:"is_release"`
	IsDirty   bool      `json:"is_dirty" yaml:"is_dirty"`
}

// GetVersionInfo merges the ldflags values with the module build info.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildInfo(bi)
	}

	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}

	return info
}

func (i *Info) applyBuildInfo(bi *debug.BuildInfo) {
	if GoVersion == "" {
		i.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == "" {
				i.GitCommit = s.Value
				if len(i.GitCommit) > 7 {
					i.GitCommit = i.GitCommit[:7]
				}
			}
		case "vcs.modified":
			i.IsDirty = s.Value == "true"
		case "vcs.time":
			if BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					i.BuildDate = t
					i.BuildTime = s.Value
				}
			}
		}
	}
}

// GetShortVersion returns version and commit, e.g. "1.0.0-abc1234".
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	if info.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
	}
	return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
}

// GetFullVersion returns the version line printed by the CLI.
func GetFullVersion() string {
	info := GetVersionInfo()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if info.GitBranch != "" && info.GitBranch != "main" && info.GitBranch != "master" {
		parts = append(parts, info.GitBranch)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	v := strings.Join(parts, "-")
	if !info.BuildDate.IsZero() {
		v += fmt.Sprintf(" (built %s, %s)", info.BuildDate.Format("2006-01-02T15:04:05Z"), info.GoVersion)
	}
	return v
}

// UserAgent returns the default User-Agent sent by the executor.
func UserAgent() string {
	return Product + "/" + Version
}
