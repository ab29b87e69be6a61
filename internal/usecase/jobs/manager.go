// Where: internal/usecase/jobs/manager.go
// What: Job manager shared by deploy, cleanup and list.
// Why: The three workflows use the same API client, context and output.
package jobs

import (
	"context"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
)

// API is the subset of the dbt Cloud client used for job management.
type API interface {
	CreateJob(ctx context.Context, payload job.Payload) (dbtcloud.Job, error)
	UpdateJob(ctx context.Context, id int64, payload job.Payload) (dbtcloud.Job, error)
	DeleteJob(ctx context.Context, id int64) error
	ListJobs(ctx context.Context, projectID int64) ([]dbtcloud.Job, error)
	FindJobByName(ctx context.Context, name string, projectID int64) (*dbtcloud.Job, error)
}

// Manager runs job workflows for one team and branch.
type Manager struct {
	API     API
	Context job.Context
	UI      ui.UserInterface
}

// NewManager constructs a Manager.
func NewManager(api API, jobCtx job.Context, out ui.UserInterface) Manager {
	return Manager{API: api, Context: jobCtx, UI: out}
}

func (m Manager) now() time.Time {
	if m.Context.Now != nil {
		return m.Context.Now().UTC()
	}
	return time.Now().UTC()
}

// Banner prints who and where the manager deploys.
func (m Manager) Banner() {
	m.UI.Block("🚀", "Job Manager initialized for team: "+m.Context.Team, []ui.KeyValue{
		{Key: "Branch", Value: m.Context.Branch},
		{Key: "User", Value: m.Context.User},
		{Key: "Environment ID", Value: m.Context.EnvironmentID},
	})
}
