// Where: internal/usecase/convert/convert.go
// What: Convert discovered production jobs into a tfvars job list.
// Why: Existing jobs become the starting point of the managed job configuration.
package convert

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/tfvars"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/discover"
)

const (
	defaultThreads = 4
	defaultJobType = "daily"
)

// Converter writes converted_<profile>_jobs.tfvars from the discovery cache.
type Converter struct {
	Cache  cache.Store
	OutDir string
	Team   string
	UI     ui.UserInterface
	Now    func() time.Time
}

// OutputFile names the converted file for a profile.
func OutputFile(profile string) string {
	return fmt.Sprintf("converted_%s_jobs.tfvars", profile)
}

// Run converts the detected profile's production jobs and returns the written path.
func (c Converter) Run(ctx context.Context) (string, error) {
	profile, err := discover.DetectProfile(ctx, c.Cache)
	if err != nil {
		return "", err
	}
	c.UI.Info(fmt.Sprintf("🔄 Converting %s production jobs to tfvars format...", profile.Name))

	raw, err := c.Cache.Sub(profile.DiscoveryDir).Read(ctx, profile.ProductionFile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", profile.ProductionFile, err)
	}
	jobs, err := dbtcloud.DecodeJobs(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", profile.ProductionFile, err)
	}

	items := make([]map[string]cty.Value, 0, len(jobs))
	for _, j := range jobs {
		item := Item(j, c.Team, profile.Name)
		fields, err := CheckItem(item)
		if err != nil {
			c.UI.Warn(fmt.Sprintf("Skipping job %s (ID: %d): converted entry cannot be read back: %v", j.Name, j.ID, err))
			continue
		}
		if len(fields) > 0 {
			c.UI.Warn(fmt.Sprintf("Job %s (ID: %d): %s will not read back unchanged; edit before deploying",
				j.Name, j.ID, strings.Join(fields, ", ")))
		}
		items = append(items, item)
	}
	header := []string{
		fmt.Sprintf("Converted from existing dbt Cloud %s jobs", profile.Name),
		"Generated on: " + c.now().Format("2006-01-02 15:04:05"),
	}
	content, err := tfvars.EncodeList(meta.JobsListName, items, header)
	if err != nil {
		return "", err
	}
	if _, err := tfvars.Parse(string(content), meta.JobsListName); err != nil {
		return "", fmt.Errorf("converted jobs do not parse: %w", err)
	}

	path := OutputFile(profile.Name)
	if c.OutDir != "" {
		path = filepath.Join(c.OutDir, path)
	}
	if err := fileops.WriteFile(path, content); err != nil {
		return "", err
	}

	c.UI.Success(fmt.Sprintf("Conversion complete! Check %s", path))
	c.UI.Block("📝", "Next steps", []ui.KeyValue{
		{Key: "1", Value: "Review " + filepath.Base(path)},
		{Key: "2", Value: "Update " + meta.DefaultPlanVarFile + " with these jobs"},
		{Key: "3", Value: "Test the configuration with --dry-run"},
	})
	return path, nil
}

// Item maps one API job onto a tfvars job entry.
func Item(j dbtcloud.Job, team, profile string) map[string]cty.Value {
	name := j.Name
	if team != "" {
		name = strings.TrimPrefix(name, team+"-")
	}
	description := j.Description
	if description == "" {
		description = fmt.Sprintf("Imported from existing dbt Cloud %s job", profile)
	}

	scheduleType := job.ScheduleManual
	var hours []int
	if j.Triggers.Schedule {
		scheduleType = job.ScheduleEveryDay
		hours = j.Schedule.ScheduleHours()
	}

	threads := defaultThreads
	if j.Settings.Threads != nil {
		threads = *j.Settings.Threads
	}
	generateDocs := true
	if j.Settings.GenerateDocs != nil {
		generateDocs = *j.Settings.GenerateDocs
	}

	return map[string]cty.Value{
		"name":           cty.StringVal(name),
		"description":    cty.StringVal(description),
		"execute_steps":  tfvars.StringList(j.ExecuteSteps),
		"schedule_type":  cty.StringVal(scheduleType),
		"schedule_hours": tfvars.IntList(hours),
		"job_type":       cty.StringVal(defaultJobType),
		"threads":        cty.NumberIntVal(int64(threads)),
		"generate_docs":  cty.BoolVal(generateDocs),
	}
}

// CheckItem encodes item alone and reads it back with the block parser. It
// returns the fields whose value changes on the way, in name order. The parser
// has no escape handling, so quotes, newlines and `${` inside strings do not
// survive. A parse error means the entry would break the whole file.
func CheckItem(item map[string]cty.Value) ([]string, error) {
	content, err := tfvars.EncodeList(meta.JobsListName, []map[string]cty.Value{item}, nil)
	if err != nil {
		return nil, err
	}
	doc, err := tfvars.Parse(string(content), meta.JobsListName)
	if err != nil {
		return nil, err
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("read back %d records, want 1", len(doc))
	}

	keys := make([]string, 0, len(item))
	for key := range item {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var changed []string
	for _, key := range keys {
		want, ok := parsedForm(item[key])
		if !ok || !doc[0][key].Equal(want) {
			changed = append(changed, key)
		}
	}
	return changed, nil
}

// parsedForm is the value the block parser yields for a well-behaved v.
func parsedForm(v cty.Value) (tfvars.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return tfvars.Value{}, false
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return tfvars.StringValue(v.AsString()), true
	case ty == cty.Number:
		n, acc := v.AsBigFloat().Int64()
		if acc != big.Exact {
			return tfvars.Value{}, false
		}
		return tfvars.IntValue(n), true
	case ty == cty.Bool:
		return tfvars.StringValue(strconv.FormatBool(v.True())), true
	case ty.IsListType() || ty.IsTupleType():
		if v.LengthInt() == 0 {
			return tfvars.StringListValue(nil), true
		}
		elems := v.AsValueSlice()
		if ty.IsListType() && ty.ElementType() == cty.Number {
			nums := make([]int64, 0, len(elems))
			for _, e := range elems {
				n, acc := e.AsBigFloat().Int64()
				if acc != big.Exact {
					return tfvars.Value{}, false
				}
				nums = append(nums, n)
			}
			return tfvars.IntListValue(nums), true
		}
		strs := make([]string, 0, len(elems))
		for _, e := range elems {
			if e.Type() != cty.String || e.IsNull() {
				return tfvars.Value{}, false
			}
			strs = append(strs, e.AsString())
		}
		return tfvars.StringListValue(strs), true
	}
	return tfvars.Value{}, false
}

func (c Converter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
