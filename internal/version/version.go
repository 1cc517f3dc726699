package version

import (
	"fmt"
	"runtime/debug"
)

const release = "0.1.0"

// String returns the human-readable sliceygen version, including the git
// revision when the binary was built with one.
func String() string {
	rev := vcsRevision()
	if rev == "" {
		return fmt.Sprintf("sliceygen %s", release)
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	return fmt.Sprintf("sliceygen %s (%s)", release, rev)
}

// vcsRevision searches the buildinfo built into the binary to find and
// return the git revision, if present. Returns an empty string otherwise.
func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for i := range bi.Settings {
		if bi.Settings[i].Key == "vcs.revision" {
			return bi.Settings[i].Value
		}
	}
	return ""
}
