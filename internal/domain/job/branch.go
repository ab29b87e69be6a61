// Where: internal/domain/job/branch.go
// What: Classify deployed jobs as team production jobs or branch jobs.
// Why: Cleanup and listing must never treat production jobs as disposable.
package job

import (
	"regexp"
	"strings"
)

var branchMarker = regexp.MustCompile(`\(Branch: ([^,()]+), User: [^()]*\)`)

// IsTeamJob reports whether name carries the team prefix.
func (c Context) IsTeamJob(name string) bool {
	return strings.HasPrefix(name, c.Team+"-")
}

// IsBranchJob reports whether a team job was deployed from a feature branch.
//
// Descriptions written by Payload end with `(Branch: b, User: u)`; when present that
// marker decides. Otherwise the name after the team prefix must have the
// `<branch>-<user>-<job>` shape and not start with a protected branch.
func (c Context) IsBranchJob(name, description string) bool {
	if !c.IsTeamJob(name) {
		return false
	}
	if matches := branchMarker.FindAllStringSubmatch(description, -1); len(matches) > 0 {
		branch := strings.TrimSpace(matches[len(matches)-1][1])
		return !IsProtectedBranch(branch)
	}

	rest := strings.TrimPrefix(name, c.Team+"-")
	for _, protected := range ProtectedBranches {
		if strings.HasPrefix(rest, protected+"-") {
			return false
		}
	}
	return len(strings.Split(rest, "-")) >= 3
}
