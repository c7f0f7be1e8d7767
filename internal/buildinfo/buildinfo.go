// Package buildinfo exposes the commit the binary was built from.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const unknown = "unknown"

// Version, Commit, CommitDate and Branch are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/mithrel/inkleaf/internal/buildinfo.Commit=$(git rev-parse HEAD)"
var (
	Version    = "dev"
	Commit     = unknown
	CommitDate = unknown
	Branch     = unknown
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	Commit     string `json:"commit" yaml:"commit"`
	CommitDate string `json:"commitDate" yaml:"commitDate"`
	Branch     string `json:"branch" yaml:"branch"`
	// RepoURL is the web root of the source repository, if known.
	RepoURL string `json:"repoUrl,omitempty" yaml:"repoUrl,omitempty"`
}

// Current returns the ldflags values, filling gaps from the Go toolchain's
// embedded VCS stamp when available.
func Current(repoURL string) Info {
	info := Info{
		Version:    Version,
		Commit:     Commit,
		CommitDate: CommitDate,
		Branch:     Branch,
		RepoURL:    repoURL,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == unknown {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.CommitDate == unknown {
					info.CommitDate = s.Value
				}
			}
		}
	}
	return info
}

// ShortHash is the first seven characters of the commit.
func (i Info) ShortHash() string {
	if len(i.Commit) <= 7 {
		return i.Commit
	}
	return i.Commit[:7]
}

// FormattedDate renders the commit date in UTC as YYYY-MM-DD hh:mm:ss.
// Unparsable dates are returned as given.
func (i Info) FormattedDate() string {
	t, err := dateparse.ParseAny(i.CommitDate)
	if err != nil {
		return i.CommitDate
	}
	return t.UTC().Format(time.DateTime)
}

// ShowBranch hides the default branch and unset values.
func (i Info) ShowBranch() bool {
	return i.Branch != "" && i.Branch != "master" && i.Branch != unknown
}

// CommitURL links to the commit, or "" without a repo URL or commit.
func (i Info) CommitURL() string {
	if i.RepoURL == "" || i.Commit == "" || i.Commit == unknown {
		return ""
	}
	return strings.TrimRight(i.RepoURL, "/") + "/commit/" + i.Commit
}

// WritePanel prints the human-readable build panel.
func (i Info) WritePanel(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "inkleaf %s\n", i.Version)
	fmt.Fprintf(&b, "commit: %s\n", i.ShortHash())
	if u := i.CommitURL(); u != "" {
		fmt.Fprintf(&b, "        %s\n", u)
	}
	fmt.Fprintf(&b, "%s\n", i.FormattedDate())
	if i.ShowBranch() {
		fmt.Fprintf(&b, "branch: %s\n", i.Branch)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
