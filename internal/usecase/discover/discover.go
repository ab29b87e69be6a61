// Where: internal/usecase/discover/discover.go
// What: Fetch account resources and team jobs into the discovery cache.
// Why: Import generation works from cached API responses, not live calls.
package discover

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

var errAPINotConfigured = errors.New("dbt Cloud client is not configured")

// ResourceTypes are the account resources fetched by Resources, in order.
var ResourceTypes = []string{"projects", "environments", "connections", "users", "groups", "repositories"}

var resourceEmoji = map[string]string{
	"projects":     "📁",
	"environments": "🌍",
	"connections":  "🔗",
	"users":        "👥",
	"groups":       "🏢",
	"repositories": "📚",
}

// API is the subset of the dbt Cloud client used for discovery.
type API interface {
	ListResource(ctx context.Context, resource string) ([]byte, error)
	ListJobsRaw(ctx context.Context, projectID int64) ([]byte, error)
}

// Discoverer writes API responses into Cache.
type Discoverer struct {
	API          API
	Cache        cache.Store
	UI           ui.UserInterface
	Team         string
	ProjectID    int64
	Environments category.Environments
}

// ResourceCount is the result of fetching one resource type.
type ResourceCount struct {
	Resource string
	Count    int
	Err      error
}

// Resources fetches every resource type into `<cache>/dbt_discovery/<resource>.json`.
// A failed resource is reported and skipped.
func (d Discoverer) Resources(ctx context.Context) ([]ResourceCount, error) {
	if d.API == nil {
		return nil, errAPINotConfigured
	}
	store := d.Cache.Sub(meta.ResourceDiscoveryDir)
	d.UI.Info("🔍 Discovering your dbt Cloud resources...")

	results := make([]ResourceCount, 0, len(ResourceTypes))
	for _, resource := range ResourceTypes {
		d.UI.Info(fmt.Sprintf("%s Getting %s...", resourceEmoji[resource], resource))
		count, err := d.fetchResource(ctx, store, resource)
		results = append(results, ResourceCount{Resource: resource, Count: count, Err: err})
		if err != nil {
			d.UI.Error(fmt.Sprintf("Error fetching %s: %v", resource, err))
			continue
		}
		d.UI.Info(fmt.Sprintf("Found %d %s", count, resource))
	}

	rows := make([]ui.KeyValue, 0, len(results))
	for _, r := range results {
		value := any(r.Count)
		if r.Err != nil {
			value = "failed"
		}
		rows = append(rows, ui.KeyValue{Key: r.Resource, Value: value})
	}
	d.UI.Block("📊", "Discovery summary", rows)
	d.UI.Success(fmt.Sprintf("Discovery complete! Check %s for details.", store.Location()))
	return results, nil
}

func (d Discoverer) fetchResource(ctx context.Context, store cache.Store, resource string) (int, error) {
	raw, err := d.API.ListResource(ctx, resource)
	if err != nil {
		return 0, err
	}
	pretty, err := indentJSON(raw)
	if err != nil {
		return 0, err
	}
	if err := store.Write(ctx, resource+".json", pretty); err != nil {
		return 0, err
	}
	return dbtcloud.CountItems(raw), nil
}

func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("format response: %w", err)
	}
	return buf.Bytes(), nil
}
