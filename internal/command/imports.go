// Where: internal/command/imports.go
// What: import subcommand adapters.
// Why: Generation reads the cache; execution and complete drive terraform in the working directory.
package command

import (
	"context"
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/importer"
)

func newImporter(ctx context.Context, s session) (importer.Importer, error) {
	store, err := s.openCache(ctx)
	if err != nil {
		return importer.Importer{}, err
	}
	return importer.Importer{
		Cache:       store,
		OutDir:      s.deps.WorkDir,
		Team:        s.cfg.TeamName,
		JobModule:   s.cfg.JobModule,
		PlanVarFile: s.cfg.PlanVarFile,
		Terraform:   s.terraformCLI(),
		Prompter:    s.prompter(),
		UI:          s.ui,
	}, nil
}

func withImporter(ctx context.Context, cli CLI, deps Dependencies, out io.Writer, run func(importer.Importer) error) int {
	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	imp, err := newImporter(ctx, s)
	if err != nil {
		return exitWithError(out, cli, err)
	}
	if err := run(imp); err != nil {
		return exitWithError(out, cli, err)
	}
	return 0
}

func runImportGenerateResources(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	return withImporter(ctx, cli, deps, out, func(imp importer.Importer) error {
		_, _, err := imp.GenerateResources(ctx)
		return err
	})
}

func runImportGenerateJobs(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	return withImporter(ctx, cli, deps, out, func(imp importer.Importer) error {
		_, _, err := imp.GenerateJobs(ctx)
		return err
	})
}

func runImportExecute(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	opts := importer.ExecuteOptions{AssumeYes: cli.Import.Execute.Yes}
	if cli.Import.Execute.File != "" {
		opts.File = workPath(deps.WorkDir, cli.Import.Execute.File)
	}
	return withImporter(ctx, cli, deps, out, func(imp importer.Importer) error {
		_, err := imp.Execute(ctx, opts)
		return err
	})
}

func runImportComplete(ctx context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	return withImporter(ctx, cli, deps, out, func(imp importer.Importer) error {
		_, err := imp.Complete(ctx)
		return err
	})
}
