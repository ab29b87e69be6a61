// Where: internal/command/jobs.go
// What: deploy, cleanup and list command adapters.
// Why: Translate CLI flags into job manager calls.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/jobs"
)

func newManager(s session) (jobs.Manager, error) {
	api, err := s.api()
	if err != nil {
		return jobs.Manager{}, err
	}
	return jobs.NewManager(api, s.jobContext(), s.ui), nil
}

func runDeploy(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	required := []string{config.VarAccountID, config.VarToken, config.VarProjectID, config.VarEnvironmentID}
	if cli.Deploy.DryRun {
		// Validation only builds payloads; no API call is made.
		required = nil
	}
	s, err := newSession(cli, deps, required...)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	manager := jobs.NewManager(nil, s.jobContext(), s.ui)
	if !cli.Deploy.DryRun {
		if manager, err = newManager(s); err != nil {
			return exitWithError(out, cli, err)
		}
	}
	manager.Banner()

	result, err := manager.Deploy(ctx, workPath(deps.WorkDir, cli.Deploy.Config), cli.Deploy.DryRun)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if len(result.Failed) > 0 {
		s.ui.Warn(fmt.Sprintf("%d job(s) failed: %v", len(result.Failed), result.Failed))
	}
	return 0
}

func runCleanup(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	s, err := newSession(cli, deps, config.VarAccountID, config.VarToken, config.VarProjectID)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	manager, err := newManager(s)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if _, err := manager.Cleanup(ctx, cli.Cleanup.OlderThan, cli.Cleanup.DryRun); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}

func runList(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	s, err := newSession(cli, deps, config.VarAccountID, config.VarToken, config.VarProjectID)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	manager, err := newManager(s)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if _, err := manager.List(ctx, cli.List.Details); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}
