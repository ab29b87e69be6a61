// Where: internal/usecase/jobs/cleanup.go
// What: Delete stale branch jobs of the team.
// Why: Feature-branch deployments leave jobs behind after merge.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
)

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseCreatedAt parses the timestamp formats the API returns for created_at.
func ParseCreatedAt(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range createdAtLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadCreatedAt, value)
}

// CleanupResult summarizes a cleanup run.
type CleanupResult struct {
	Candidates []dbtcloud.Job
	Deleted    []int64
}

// Cleanup deletes team branch jobs created at least olderThanDays ago.
func (m Manager) Cleanup(ctx context.Context, olderThanDays int, dryRun bool) (CleanupResult, error) {
	var result CleanupResult
	if m.API == nil {
		return result, errAPINotConfigured
	}
	if olderThanDays < 0 {
		return result, fmt.Errorf("%w: %d", errNegativeAge, olderThanDays)
	}

	m.UI.Info(fmt.Sprintf("🧹 Cleaning up branch jobs older than %d days", olderThanDays))
	all, err := m.API.ListJobs(ctx, m.Context.ProjectID)
	if err != nil {
		return result, err
	}
	cutoff := m.now().Add(-time.Duration(olderThanDays) * 24 * time.Hour)

	for _, j := range all {
		if !m.Context.IsBranchJob(j.Name, j.Description) {
			continue
		}
		created, err := ParseCreatedAt(j.CreatedAt)
		if err != nil {
			m.UI.Warn(fmt.Sprintf("Skipping %s (ID: %d): %v", j.Name, j.ID, err))
			continue
		}
		if created.After(cutoff) {
			continue
		}
		result.Candidates = append(result.Candidates, j)
	}
	m.UI.Info(fmt.Sprintf("🎯 Found %d jobs to clean up", len(result.Candidates)))

	for _, j := range result.Candidates {
		if dryRun {
			m.UI.Info(fmt.Sprintf("[DRY RUN] Would delete: %s (ID: %d, Created: %s)", j.Name, j.ID, j.CreatedAt))
			continue
		}
		m.UI.Info(fmt.Sprintf("Deleting job ID: %d", j.ID))
		if err := m.API.DeleteJob(ctx, j.ID); err != nil {
			m.UI.Error(fmt.Sprintf("Failed to delete job %d: %v", j.ID, err))
			continue
		}
		m.UI.Success(fmt.Sprintf("Job deleted successfully - ID: %d", j.ID))
		result.Deleted = append(result.Deleted, j.ID)
	}

	if dryRun {
		m.UI.Info(fmt.Sprintf("[DRY RUN] Would delete %d jobs", len(result.Candidates)))
	} else {
		m.UI.Success(fmt.Sprintf("Successfully deleted %d jobs", len(result.Deleted)))
	}
	return result, nil
}
