// Where: internal/domain/naming/naming.go
// What: Terraform resource-name normalisation for imported dbt Cloud objects.
// Why: Import addresses must be valid identifiers derived from display names.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	separatorRun = regexp.MustCompile(`[-\s]+`)
	invalidChars = regexp.MustCompile(`[^a-z0-9_]`)
)

// teamPrefixes are stripped from job names after the configured team prefix.
var teamPrefixes = []string{"marketing-team-", "marketing-", "analytics-team-", "analytics-"}

// Clean lowercases name, turns runs of dashes/whitespace into `_`, and drops anything
// outside [a-z0-9_].
func Clean(name string) string {
	cleaned := separatorRun.ReplaceAllString(strings.ToLower(name), "_")
	return invalidChars.ReplaceAllString(cleaned, "")
}

// JobResource derives the resource name for a job, dropping team prefixes first.
func JobResource(name, team string) string {
	if team != "" {
		name = strings.TrimPrefix(name, team+"-")
	}
	for _, prefix := range teamPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
		}
	}
	return Clean(name)
}

// User joins cleaned first and last names, defaulting to `user_name`.
func User(first, last string) string {
	if first == "" {
		first = "user"
	}
	if last == "" {
		last = "name"
	}
	return Clean(first) + "_" + Clean(last)
}

// Repository derives a name from the remote URL's last path segment, or `repo_<id>`.
func Repository(remoteURL string, id int64) string {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return fmt.Sprintf("repo_%d", id)
	}
	segments := strings.Split(remoteURL, "/")
	last := strings.ReplaceAll(segments[len(segments)-1], ".git", "")
	return Clean(last)
}
