// Where: internal/usecase/discover/jobs.go
// What: Split a project's jobs into production, development and marketing categories.
// Why: Only production jobs are imported into Terraform; the rest stay API-managed.
package discover

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
)

// DevelopmentFile holds non-production team jobs for the analytics profile.
const DevelopmentFile = "development_jobs.json"

// JobEntry keeps the decoded fields next to the original JSON object.
type JobEntry struct {
	Job dbtcloud.Job
	Raw json.RawMessage
}

// TeamJobsResult summarizes a team job discovery run.
type TeamJobsResult struct {
	Total       int
	Production  []dbtcloud.Job
	Development []dbtcloud.Job
	Categories  map[string]int
}

// TeamJobs lists the project's jobs and writes the profile's discovery files.
func (d Discoverer) TeamJobs(ctx context.Context, profile category.Profile) (TeamJobsResult, error) {
	var result TeamJobsResult
	if d.API == nil {
		return result, errAPINotConfigured
	}
	store := d.Cache.Sub(profile.DiscoveryDir)
	d.UI.Info(fmt.Sprintf("🔍 Discovering %s jobs for %s (project %d)...", profile.Name, d.Team, d.ProjectID))

	raw, err := d.API.ListJobsRaw(ctx, d.ProjectID)
	if err != nil {
		return result, fmt.Errorf("fetch jobs: %w", err)
	}
	pretty, err := indentJSON(raw)
	if err != nil {
		return result, err
	}
	if err := store.Write(ctx, profile.AllJobsFile, pretty); err != nil {
		return result, err
	}
	entries, err := DecodeJobEntries(raw)
	if err != nil {
		return result, err
	}
	result.Total = len(entries)
	d.UI.Info(fmt.Sprintf("Found %d total jobs", result.Total))

	var production, development []JobEntry
	for _, e := range entries {
		if d.Environments.IsProduction(e.Job.Name, e.Job.EnvironmentID) {
			production = append(production, e)
			continue
		}
		if category.IsDevelopment(e.Job.Name, d.Team) {
			development = append(development, e)
		}
	}

	if profile.CategoryPrefix {
		if result.Categories, err = d.writeCategories(ctx, store, entries); err != nil {
			return result, err
		}
	} else {
		if err := writeEntries(ctx, store, DevelopmentFile, development); err != nil {
			return result, err
		}
		result.Development = jobsOf(development)
	}
	if err := writeEntries(ctx, store, profile.ProductionFile, production); err != nil {
		return result, err
	}
	result.Production = jobsOf(production)

	d.report(profile, result)
	return result, nil
}

func (d Discoverer) writeCategories(ctx context.Context, store cache.Store, entries []JobEntry) (map[string]int, error) {
	grouped := map[string][]JobEntry{}
	for _, e := range entries {
		cat := category.Categorize(e.Job.Name)
		grouped[cat] = append(grouped[cat], e)
	}
	counts := make(map[string]int, len(grouped))
	for _, cat := range category.MarketingCategories() {
		if err := writeEntries(ctx, store, category.CategoryFile(cat), grouped[cat]); err != nil {
			return nil, err
		}
		counts[cat] = len(grouped[cat])
	}
	return counts, nil
}

func (d Discoverer) report(profile category.Profile, result TeamJobsResult) {
	if profile.CategoryPrefix {
		rows := make([]ui.KeyValue, 0, len(result.Categories)+1)
		for _, cat := range category.MarketingCategories() {
			rows = append(rows, ui.KeyValue{Key: cat, Value: result.Categories[cat]})
		}
		rows = append(rows, ui.KeyValue{Key: "production (to import)", Value: len(result.Production)})
		d.UI.Block("📊", "Marketing Job Summary", rows)
	} else {
		d.UI.Block("📊", "Job Summary", []ui.KeyValue{
			{Key: "production (to import)", Value: len(result.Production)},
			{Key: "development (API-managed)", Value: len(result.Development)},
		})
	}

	d.UI.Info("🏭 Production jobs (will import to Terraform):")
	for _, j := range result.Production {
		d.UI.Info(fmt.Sprintf("  - %s (ID: %d) - Env: %d", j.Name, j.ID, j.EnvironmentID))
	}
	if !profile.CategoryPrefix {
		d.UI.Info("🌿 Development jobs (managed via API, not imported):")
		for _, j := range result.Development {
			d.UI.Info(fmt.Sprintf("  - %s (ID: %d) - Env: %d", j.Name, j.ID, j.EnvironmentID))
		}
	}
	d.UI.Success(fmt.Sprintf("Discovery complete! Review %s.", d.Cache.Sub(profile.DiscoveryDir).Location()))
}

// DecodeJobEntries decodes a `{"data": [...]}` jobs listing keeping each raw object.
func DecodeJobEntries(raw []byte) ([]JobEntry, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	entries := make([]JobEntry, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		var j dbtcloud.Job
		if err := json.Unmarshal(item, &j); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		entries = append(entries, JobEntry{Job: j, Raw: item})
	}
	return entries, nil
}

func writeEntries(ctx context.Context, store cache.Store, name string, entries []JobEntry) error {
	items := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Raw)
	}
	payload, err := json.MarshalIndent(struct {
		Data []json.RawMessage `json:"data"`
	}{Data: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return store.Write(ctx, name, payload)
}

func jobsOf(entries []JobEntry) []dbtcloud.Job {
	out := make([]dbtcloud.Job, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Job)
	}
	return out
}
