// Where: internal/usecase/jobs/list.go
// What: List the team's jobs split into production and branch jobs.
// Why: Give operators a quick view of what a team has deployed.
package jobs

import (
	"context"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
)

// Listing groups team jobs.
type Listing struct {
	Production []dbtcloud.Job
	Branch     []dbtcloud.Job
}

// List prints team jobs; details adds environment and creation time.
func (m Manager) List(ctx context.Context, details bool) (Listing, error) {
	var listing Listing
	if m.API == nil {
		return listing, errAPINotConfigured
	}
	m.UI.Info(fmt.Sprintf("📋 Listing jobs for team: %s", m.Context.Team))

	all, err := m.API.ListJobs(ctx, m.Context.ProjectID)
	if err != nil {
		return listing, err
	}
	for _, j := range all {
		if !m.Context.IsTeamJob(j.Name) {
			continue
		}
		if m.Context.IsBranchJob(j.Name, j.Description) {
			listing.Branch = append(listing.Branch, j)
		} else {
			listing.Production = append(listing.Production, j)
		}
	}

	m.UI.Info("")
	m.UI.Info(fmt.Sprintf("🏭 Production Jobs (%d):", len(listing.Production)))
	for _, j := range listing.Production {
		m.printJob(j)
		if details {
			m.UI.Info(fmt.Sprintf("    Environment: %d", j.EnvironmentID))
			m.UI.Info(fmt.Sprintf("    Created: %s", j.CreatedAt))
		}
	}

	m.UI.Info("")
	m.UI.Info(fmt.Sprintf("🌿 Branch Jobs (%d):", len(listing.Branch)))
	for _, j := range listing.Branch {
		m.printJob(j)
		if details {
			m.UI.Info(fmt.Sprintf("    Created: %s", j.CreatedAt))
		}
	}
	return listing, nil
}

func (m Manager) printJob(j dbtcloud.Job) {
	status := "Inactive"
	if j.Active() {
		status = "Active"
	}
	m.UI.Info(fmt.Sprintf("  - %s (ID: %d) - %s", j.Name, j.ID, status))
}
