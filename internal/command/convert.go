// Where: internal/command/convert.go
// What: convert command adapter.
package command

import (
	"context"
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/convert"
)

func runConvert(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	store, err := s.openCache(ctx)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	conv := convert.Converter{
		Cache:  store,
		OutDir: deps.WorkDir,
		Team:   s.cfg.TeamName,
		UI:     s.ui,
		Now:    deps.Now,
	}
	if _, err := conv.Run(ctx); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}
