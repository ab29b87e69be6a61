// Where: internal/usecase/importer/complete.go
// What: Import account resources directly from the discovery cache.
// Why: Bootstraps a fresh Terraform state without a command file.
package importer

import (
	"context"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

// CompleteResult counts per-resource import outcomes.
type CompleteResult struct {
	Imported int
	Failed   int
}

// Complete runs terraform init then imports projects, environments, connections, users and groups.
func (i Importer) Complete(ctx context.Context) (CompleteResult, error) {
	if i.Terraform == nil {
		return CompleteResult{}, errTerraformMissing
	}
	store := i.Cache.Sub(meta.ResourceDiscoveryDir)
	ok, err := store.Exists(ctx)
	if err != nil {
		return CompleteResult{}, err
	}
	if !ok {
		return CompleteResult{}, fmt.Errorf("%w at %s: run `discover resources` first", errNoDiscovery, store.Location())
	}

	i.UI.Info("🚀 Starting complete dbt Cloud import...")
	if err := i.Terraform.Init(ctx); err != nil {
		return CompleteResult{}, fmt.Errorf("terraform init: %w", err)
	}

	// Repositories are left to the generated command file.
	sections, err := i.buildSections(ctx, store, resourceKinds[:5])
	if err != nil {
		return CompleteResult{}, err
	}

	var result CompleteResult
	for _, section := range sections {
		kind := kindByTitle(section.Title)
		for _, c := range section.Commands {
			i.UI.Info(fmt.Sprintf("%s Importing %s: %s", kind.emoji, section.Title, c.Address))
			res := i.Terraform.ImportID(ctx, c.Address, c.ID)
			if res.OK() {
				i.UI.Success("Successfully imported")
				result.Imported++
				continue
			}
			i.UI.Warn("Already imported or failed")
			result.Failed++
		}
	}
	i.UI.Success(fmt.Sprintf("Import complete: %d imported, %d skipped", result.Imported, result.Failed))
	return result, nil
}

func kindByTitle(title string) resourceKind {
	for _, k := range resourceKinds {
		if k.title == title {
			return k
		}
	}
	return resourceKind{}
}
