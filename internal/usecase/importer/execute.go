// Where: internal/usecase/importer/execute.go
// What: Run generated import command files and the post-import plan.
// Why: Imports mutate Terraform state, so execution is confirmed first.
package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/imports"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

// commandPrefix is the first word of every runnable line; the rest is passed
// to the configured terraform binary.
const commandPrefix = "terraform"

// ExecuteOptions controls import execution.
type ExecuteOptions struct {
	AssumeYes bool
	// File overrides command file detection.
	File string
}

// ExecuteResult summarizes an import run.
type ExecuteResult struct {
	File      string
	Imported  int
	Failed    int
	Cancelled bool
}

// CommandsFile finds the job commands file, marketing first.
func (i Importer) CommandsFile() (string, error) {
	var candidates []string
	for _, p := range category.Profiles() {
		candidates = append(candidates, i.outPath(p.CommandsFile))
	}
	path, ok, err := fileops.FirstExisting(candidates...)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: run `import generate-jobs` first", errNoCommandsFile)
	}
	return path, nil
}

// Execute runs every command in the commands file and finishes with terraform plan.
func (i Importer) Execute(ctx context.Context, opts ExecuteOptions) (ExecuteResult, error) {
	if i.Terraform == nil {
		return ExecuteResult{}, errTerraformMissing
	}
	path := opts.File
	if path == "" {
		found, err := i.CommandsFile()
		if err != nil {
			return ExecuteResult{}, err
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ExecuteResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	lines := imports.ParseLines(string(data))
	result := ExecuteResult{File: path}

	i.UI.Info(fmt.Sprintf("🚀 Executing %d import commands from %s", len(lines), path))
	if !opts.AssumeYes {
		if i.Prompter == nil {
			return result, errPrompterNotDefined
		}
		ok, err := i.Prompter.Confirm("Do you want to proceed with the import?")
		if err != nil {
			return result, err
		}
		if !ok {
			i.UI.Info("Import cancelled.")
			result.Cancelled = true
			return result, nil
		}
	}

	for n, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != commandPrefix {
			i.UI.Warn(fmt.Sprintf("Skipping malformed command: %s", line))
			result.Failed++
			continue
		}
		i.UI.Info(fmt.Sprintf("[%d/%d] %s", n+1, len(lines), line))
		res := i.Terraform.RunArgs(ctx, fields[1:])
		if res.OK() {
			i.UI.Success("Success")
			result.Imported++
			continue
		}
		result.Failed++
		i.UI.Warn(fmt.Sprintf("Failed: %s", strings.TrimSpace(res.Output)))
	}

	i.UI.Info("🔍 Running terraform plan to verify imports...")
	varFile := i.PlanVarFile
	if varFile == "" {
		varFile = meta.DefaultPlanVarFile
	}
	if err := i.Terraform.Plan(ctx, varFile); err != nil {
		i.UI.Warn(fmt.Sprintf("terraform plan failed: %v", err))
	}
	i.UI.Success(fmt.Sprintf("Import completed: %d imported, %d failed", result.Imported, result.Failed))
	return result, nil
}
