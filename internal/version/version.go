// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information (release tag or Git commit) to the CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at link time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linked version, else the VCS revision from build info.
// It returns "dev" if neither is available. A modified tree is marked "(dirty)".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}

	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
