// Where: internal/usecase/importer/resources.go
// What: Build import commands for account-level resources from the discovery cache.
// Why: Projects, environments, connections, users, groups and repositories share one mapping.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/imports"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/naming"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

type resourceKind struct {
	file    string
	title   string
	emoji   string
	address func(dbtcloud.Resource) string
}

var resourceKinds = []resourceKind{
	{file: "projects.json", title: "Project", emoji: "📁", address: func(r dbtcloud.Resource) string {
		return "dbtcloud_project." + naming.Clean(r.Name)
	}},
	{file: "environments.json", title: "Environment", emoji: "🌍", address: func(r dbtcloud.Resource) string {
		return "dbtcloud_environment." + naming.Clean(r.Name)
	}},
	{file: "connections.json", title: "Connection", emoji: "🔗", address: func(r dbtcloud.Resource) string {
		if r.Type == "snowflake" {
			return "dbtcloud_snowflake_connection." + naming.Clean(r.Name)
		}
		return "dbtcloud_connection." + naming.Clean(r.Name)
	}},
	{file: "users.json", title: "User", emoji: "👥", address: func(r dbtcloud.Resource) string {
		return "dbtcloud_user." + naming.User(r.FirstName, r.LastName)
	}},
	{file: "groups.json", title: "Group", emoji: "🏢", address: func(r dbtcloud.Resource) string {
		return "dbtcloud_group." + naming.Clean(r.Name)
	}},
	{file: "repositories.json", title: "Repository", emoji: "📚", address: func(r dbtcloud.Resource) string {
		return "dbtcloud_repository." + naming.Repository(r.RemoteURL, r.ID)
	}},
}

// buildSections reads each resource file; missing files are warned and yield an empty section.
func (i Importer) buildSections(ctx context.Context, store cache.Store, kinds []resourceKind) ([]imports.Section, error) {
	sections := make([]imports.Section, 0, len(kinds))
	for _, kind := range kinds {
		section := imports.Section{Title: kind.title}
		raw, err := store.Read(ctx, kind.file)
		if errors.Is(err, cache.ErrNotFound) {
			i.UI.Warn(fmt.Sprintf("No %s found", kind.file))
			sections = append(sections, section)
			continue
		}
		if err != nil {
			return nil, err
		}
		resources, err := dbtcloud.DecodeResources(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.file, err)
		}
		for _, r := range resources {
			section.Commands = append(section.Commands, imports.Command{Address: kind.address(r), ID: r.ID})
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// GenerateResources writes import_commands.txt for every discovered account resource.
func (i Importer) GenerateResources(ctx context.Context) (string, int, error) {
	store := i.Cache.Sub(meta.ResourceDiscoveryDir)
	ok, err := store.Exists(ctx)
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return "", 0, fmt.Errorf("%w at %s: run `discover resources` first", errNoDiscovery, store.Location())
	}

	i.UI.Info("🔧 Generating Terraform import commands...")
	sections, err := i.buildSections(ctx, store, resourceKinds)
	if err != nil {
		return "", 0, err
	}
	content, err := imports.RenderSections("", sections)
	if err != nil {
		return "", 0, err
	}
	path, err := i.writeOutput(meta.ResourceCommandsFile, content)
	if err != nil {
		return "", 0, err
	}

	count := imports.CountCommands(sections)
	i.UI.Success("Import commands generated!")
	i.UI.Info(fmt.Sprintf("📁 Saved to: %s", path))
	i.UI.Info(fmt.Sprintf("📊 Generated %d import commands", count))
	return path, count, nil
}
