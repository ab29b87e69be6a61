// Where: internal/usecase/importer/jobs.go
// What: Build import commands for discovered production jobs.
// Why: Production jobs move under the team jobs module in Terraform.
package importer

import (
	"context"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/imports"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/naming"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/discover"
)

// JobCommands maps production jobs to module job addresses.
func JobCommands(jobs []dbtcloud.Job, profile category.Profile, team, module string) []imports.Command {
	if module == "" {
		module = meta.DefaultJobModule
	}
	commands := make([]imports.Command, 0, len(jobs))
	for _, j := range jobs {
		name := naming.JobResource(j.Name, team)
		if profile.CategoryPrefix {
			name = category.MarketingPrefix(j.Name) + name
		}
		commands = append(commands, imports.Command{
			Address: fmt.Sprintf("%s.dbtcloud_job.%s", module, name),
			ID:      j.ID,
		})
	}
	return commands
}

// GenerateJobs writes the profile's job import commands file.
func (i Importer) GenerateJobs(ctx context.Context) (string, []imports.Command, error) {
	profile, err := discover.DetectProfile(ctx, i.Cache)
	if err != nil {
		return "", nil, err
	}
	i.UI.Info(fmt.Sprintf("🔧 Generating Terraform import commands for %s production jobs...", profile.Name))

	raw, err := i.Cache.Sub(profile.DiscoveryDir).Read(ctx, profile.ProductionFile)
	if err != nil {
		return "", nil, err
	}
	jobs, err := dbtcloud.DecodeJobs(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", profile.ProductionFile, err)
	}

	commands := JobCommands(jobs, profile, i.Team, i.JobModule)
	path, err := i.writeOutput(profile.CommandsFile, imports.RenderLines(commands))
	if err != nil {
		return "", nil, err
	}

	i.UI.Success(fmt.Sprintf("Import commands generated in %s", path))
	i.UI.Info(fmt.Sprintf("Generated %d import commands:", len(commands)))
	for _, c := range commands {
		i.UI.Info(c.String())
	}
	return path, commands, nil
}
