package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/dockit/offert/internal/version.Version=v0.3.0 \
//	                   -X github.com/dockit/offert/internal/version.Commit=abc123 \
//	                   -X github.com/dockit/offert/internal/version.BuildDate=2024-05-01"
//
// Unset values are filled from the embedded VCS info, then from "dev".
var (
	Version   = ""
	Commit    = ""
	BuildDate = ""
)

func init() {
	if Version == "" || Commit == "" || BuildDate == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if BuildDate == "" {
		BuildDate = "unknown"
	}
}

func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified, vcsTime string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}

	if Commit == "" && revision != "" {
		Commit = revision
		if len(Commit) > 7 {
			Commit = Commit[:7]
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			if BuildDate == "" {
				BuildDate = t.Format("2006-01-02")
			}
			if Version == "" {
				Version = "dev-" + t.Format("20060102")
			}
		}
	}
}

// Full returns the version with commit and build date
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s/%s)", Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent with every API request
func UserAgent() string {
	return "dockit-offert/" + Version
}
