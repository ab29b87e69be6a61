// Where: internal/usecase/jobs/deploy.go
// What: Create or update branch-scoped jobs from a config file.
// Why: Branch deployments manage their own jobs without Terraform state.
package jobs

import (
	"context"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
)

// DeployResult summarizes a deploy run.
type DeployResult struct {
	Deployed []dbtcloud.Job
	Failed   []string
}

// Deploy loads job specs from path and upserts each job by generated name.
// A failing job is reported and skipped.
func (m Manager) Deploy(ctx context.Context, path string, dryRun bool) (DeployResult, error) {
	var result DeployResult
	if m.API == nil && !dryRun {
		return result, errAPINotConfigured
	}

	m.UI.Info(fmt.Sprintf("📋 Loading job configurations from: %s", path))
	specs, err := LoadSpecs(path)
	if err != nil {
		return result, err
	}
	m.UI.Info(fmt.Sprintf("🎯 Found %d job configurations", len(specs)))

	if dryRun {
		m.UI.Info(fmt.Sprintf("🔍 [DRY RUN] Would deploy %d jobs to environment %d", len(specs), m.Context.EnvironmentID))
		for _, loaded := range specs {
			if loaded.Err != nil {
				m.UI.Warn(fmt.Sprintf("Invalid job configuration for %s: %v", loaded.Label(), loaded.Err))
				result.Failed = append(result.Failed, loaded.Label())
				continue
			}
			payload, err := m.Context.Payload(loaded.Spec)
			if err != nil {
				m.UI.Warn(fmt.Sprintf("Invalid job configuration for %s: %v", loaded.Label(), err))
				result.Failed = append(result.Failed, loaded.Label())
				continue
			}
			m.UI.Success(fmt.Sprintf("Job configuration valid: %s", payload.Name))
		}
		m.UI.Info("🔍 [DRY RUN] Configuration validation complete")
		return result, nil
	}

	m.UI.Info(fmt.Sprintf("🎯 Deploying %d jobs to environment %d", len(specs), m.Context.EnvironmentID))
	for _, loaded := range specs {
		deployed, err := m.deployOne(ctx, loaded)
		if err != nil {
			m.UI.Error(fmt.Sprintf("Failed to deploy job %s: %v", loaded.Label(), err))
			result.Failed = append(result.Failed, loaded.Label())
			continue
		}
		result.Deployed = append(result.Deployed, deployed)
	}

	m.UI.Success(fmt.Sprintf("Successfully deployed %d jobs", len(result.Deployed)))
	return result, nil
}

func (m Manager) deployOne(ctx context.Context, loaded LoadedSpec) (dbtcloud.Job, error) {
	if loaded.Err != nil {
		return dbtcloud.Job{}, loaded.Err
	}
	payload, err := m.Context.Payload(loaded.Spec)
	if err != nil {
		return dbtcloud.Job{}, err
	}

	existing, err := m.API.FindJobByName(ctx, payload.Name, m.Context.ProjectID)
	if err != nil {
		return dbtcloud.Job{}, fmt.Errorf("look up existing job: %w", err)
	}
	if existing != nil {
		m.UI.Info(fmt.Sprintf("Updating job: %s (ID: %d)", payload.Name, existing.ID))
		updated, err := m.API.UpdateJob(ctx, existing.ID, payload)
		if err != nil {
			return dbtcloud.Job{}, err
		}
		m.UI.Success(fmt.Sprintf("Job updated successfully - ID: %d", updated.ID))
		return updated, nil
	}

	m.UI.Info(fmt.Sprintf("Creating job: %s", payload.Name))
	created, err := m.API.CreateJob(ctx, payload)
	if err != nil {
		return dbtcloud.Job{}, err
	}
	m.UI.Success(fmt.Sprintf("Job created successfully - ID: %d", created.ID))
	return created, nil
}
