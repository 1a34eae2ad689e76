// Package version identifies the codecomplete binary, both to users and to
// the analysis service during initialize.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"go.lsp.dev/protocol"
)

// Name is the client name sent to the analysis service
const Name = "codecomplete"

// Set by release builds:
//
//	-X github.com/teranos/codecomplete/version.Version=v0.3.0
//	-X github.com/teranos/codecomplete/version.Commit=$(git rev-parse HEAD)
//	-X github.com/teranos/codecomplete/version.Date=$(date -u +%FT%TZ)
//
// Builds without ldflags (go install, go run) fall back to the module and
// VCS stamps recorded by the Go toolchain.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information for this binary
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// String is the one-line form printed by `codecomplete version`
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (commit %s", Name, i.Version, i.ShortCommit())
	if i.Modified {
		b.WriteString("+dirty")
	}
	fmt.Fprintf(&b, ", built %s, %s %s)", i.Date, i.GoVersion, i.Platform)
	return b.String()
}

// ShortCommit returns the commit hash truncated to seven characters
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// ClientInfo is the clientInfo field of the LSP initialize request
func (i Info) ClientInfo() *protocol.ClientInfo {
	return &protocol.ClientInfo{Name: Name, Version: i.Version}
}
