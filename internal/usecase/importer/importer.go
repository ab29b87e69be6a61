// Where: internal/usecase/importer/importer.go
// What: Shared state for import command generation and execution.
// Why: Generation reads the discovery cache; execution drives terraform.
package importer

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/interaction"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/terraform"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
)

var (
	errNoDiscovery        = errors.New("no discovery cache found")
	errNoCommandsFile     = errors.New("no import commands file found")
	errTerraformMissing   = errors.New("terraform runner is not configured")
	errPrompterNotDefined = errors.New("confirmation prompter is not configured")
)

// Terraform is the subset of terraform operations used by imports.
type Terraform interface {
	Init(ctx context.Context) error
	ImportID(ctx context.Context, address string, id int64) terraform.ImportResult
	RunArgs(ctx context.Context, args []string) terraform.ImportResult
	Plan(ctx context.Context, varFile string) error
}

// Importer generates and runs terraform import commands.
type Importer struct {
	Cache       cache.Store
	OutDir      string
	Team        string
	JobModule   string
	PlanVarFile string
	Terraform   Terraform
	Prompter    interaction.Prompter
	UI          ui.UserInterface
}

func (i Importer) outPath(name string) string {
	if i.OutDir == "" {
		return name
	}
	return filepath.Join(i.OutDir, name)
}

func (i Importer) writeOutput(name, content string) (string, error) {
	path := i.outPath(name)
	if err := fileops.WriteFile(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}
