// Where: internal/command/init.go
// What: init command writing dbtops.yaml with the effective defaults.
// Why: Give repositories an editable settings file instead of undocumented defaults.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

var errSettingsExists = errors.New("settings file already exists (use --force to overwrite)")

func runInit(_ context.Context, cli CLI, deps Dependencies, out io.Writer) int {
	path := cli.Settings
	if path == "" {
		path = meta.SettingsFile
	}
	path = workPath(deps.WorkDir, path)

	if fileops.FileExists(path) && !cli.Init.Force {
		return exitWithError(out, cli, fmt.Errorf("%s: %w", path, errSettingsExists))
	}

	env, err := deps.LoadEnv()
	if err != nil {
		return exitWithError(out, cli, err)
	}
	resolved := config.Resolve(config.Flags{Cache: cli.Cache}, env, config.Settings{})
	settings := config.Settings{
		TeamName:     resolved.TeamName,
		HostURL:      resolved.HostURL,
		Cache:        resolved.Cache,
		PlanVarFile:  resolved.PlanVarFile,
		TerraformBin: resolved.TerraformBin,
		JobModule:    resolved.JobModule,
	}
	if err := config.SaveSettings(path, settings); err != nil {
		return exitWithError(out, cli, err)
	}
	newUI(out, !cli.NoEmoji).Success(fmt.Sprintf("Wrote %s", path))
	return 0
}
