// Where: internal/command/discover.go
// What: discover resources / discover jobs adapters.
// Why: Wire the API client and cache store into the discoverer.
package command

import (
	"context"
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/discover"
)

func newDiscoverer(ctx context.Context, s session) (discover.Discoverer, error) {
	api, err := s.api()
	if err != nil {
		return discover.Discoverer{}, err
	}
	store, err := s.openCache(ctx)
	if err != nil {
		return discover.Discoverer{}, err
	}
	return discover.Discoverer{
		API:          api,
		Cache:        store,
		UI:           s.ui,
		Team:         s.cfg.TeamName,
		ProjectID:    s.cfg.ProjectID,
		Environments: s.environments(),
	}, nil
}

func runDiscoverResources(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	s, err := newSession(cli, deps, config.VarAccountID, config.VarToken)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	d, err := newDiscoverer(ctx, s)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if _, err := d.Resources(ctx); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}

func runDiscoverJobs(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	profile, err := category.ProfileByName(cli.Discover.Jobs.Profile)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	s, err := newSession(cli, deps, config.VarAccountID, config.VarToken, config.VarProjectID)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	d, err := newDiscoverer(ctx, s)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if _, err := d.TeamJobs(ctx, profile); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}
