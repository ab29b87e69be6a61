// Where: internal/domain/job/job_test.go
// What: Tests for job specs, schedules and payloads.
// Why: Payloads sent to dbt Cloud come from these rules.
package job

import (
	"errors"
	"testing"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/tfvars"
)

func fixedContext(branch string) Context {
	return Context{
		Team:          "marketing-team",
		Branch:        branch,
		User:          "jdoe",
		Commit:        "0123456789abcdef",
		ProjectID:     11,
		EnvironmentID: 22,
		Now: func() time.Time {
			return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
		},
	}
}

func TestJobName(t *testing.T) {
	tests := []struct {
		branch string
		want   string
	}{
		{branch: "main", want: "marketing-team-daily"},
		{branch: "master", want: "marketing-team-daily"},
		{branch: "production", want: "marketing-team-daily"},
		{branch: "feature-x", want: "marketing-team-feature-x-jdoe-daily"},
	}
	for _, tt := range tests {
		if got := fixedContext(tt.branch).JobName("daily"); got != tt.want {
			t.Fatalf("JobName(%s) = %q, want %q", tt.branch, got, tt.want)
		}
	}
}

func TestPayloadDefaults(t *testing.T) {
	spec := Spec{Name: "daily", Description: "Daily build", ExecuteSteps: []string{"dbt build"}}
	payload, err := fixedContext("feature").Payload(spec)
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if payload.Name != "marketing-team-feature-jdoe-daily" {
		t.Fatalf("Name = %q", payload.Name)
	}
	if payload.Description != "Daily build (Branch: feature, User: jdoe)" {
		t.Fatalf("Description = %q", payload.Description)
	}
	if payload.ProjectID != 11 || payload.EnvironmentID != 22 {
		t.Fatalf("ids = %d/%d", payload.ProjectID, payload.EnvironmentID)
	}
	if payload.Settings.Threads != 4 || !payload.Settings.GenerateDocs || payload.Settings.RunGenerateSources {
		t.Fatalf("settings = %+v", payload.Settings)
	}
	if payload.Settings.TargetName != nil {
		t.Fatalf("target name = %v, want nil", *payload.Settings.TargetName)
	}
	if !payload.Triggers.Schedule || payload.Triggers.GithubWebhook || payload.Triggers.OnMerge {
		t.Fatalf("triggers = %+v", payload.Triggers)
	}
	if payload.Schedule != nil {
		t.Fatalf("schedule = %+v, want nil without hours", payload.Schedule)
	}
	wantTags := []string{
		"team:marketing-team",
		"branch:feature",
		"user:jdoe",
		"commit:01234567",
		"deployed:2026-03-04T05:06:07Z",
	}
	if len(payload.Tags) != len(wantTags) {
		t.Fatalf("tags = %v", payload.Tags)
	}
	for i := range wantTags {
		if payload.Tags[i] != wantTags[i] {
			t.Fatalf("tags[%d] = %q, want %q", i, payload.Tags[i], wantTags[i])
		}
	}
}

func TestPayloadRejectsInvalidSpec(t *testing.T) {
	if _, err := fixedContext("main").Payload(Spec{ExecuteSteps: []string{"dbt run"}}); !errors.Is(err, errNameRequired) {
		t.Fatalf("error = %v, want errNameRequired", err)
	}
	if _, err := fixedContext("main").Payload(Spec{Name: "x"}); !errors.Is(err, errStepsRequired) {
		t.Fatalf("error = %v, want errStepsRequired", err)
	}
}

func TestBuildSchedule(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want *Schedule
	}{
		{
			name: "custom cron",
			spec: Spec{ScheduleType: "custom", ScheduleHours: []int{6, 18}, ScheduleDays: []int{1, 5}},
			want: &Schedule{Cron: "0 6,18 * * 1,5"},
		},
		{
			name: "default every day",
			spec: Spec{ScheduleHours: []int{7}},
			want: &Schedule{Days: []int{1, 2, 3, 4, 5, 6, 7}, Hours: []int{7}},
		},
		{
			name: "weekly",
			spec: Spec{ScheduleType: "weekly", ScheduleHours: []int{9}, ScheduleDays: []int{1}},
			want: &Schedule{Days: []int{1}, Hours: []int{9}},
		},
		{name: "custom without days", spec: Spec{ScheduleType: "custom", ScheduleHours: []int{9}}},
		{name: "weekly without hours", spec: Spec{ScheduleType: "weekly", ScheduleDays: []int{1}}},
		{name: "manual", spec: Spec{ScheduleType: "manual", ScheduleHours: []int{9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSchedule(tt.spec)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("BuildSchedule() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("BuildSchedule() = nil")
			}
			if got.Cron != tt.want.Cron || !equalInts(got.Days, tt.want.Days) || !equalInts(got.Hours, tt.want.Hours) {
				t.Fatalf("BuildSchedule() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromRecord(t *testing.T) {
	doc, err := tfvars.Parse(`jobs = [
  {
    name           = "attribution_daily"
    description    = "Attribution models"
    execute_steps  = ["dbt run --select attribution", "dbt test"]
    threads        = 8
    target_name    = "prod"
    generate_docs  = false
    schedule_type  = "custom"
    schedule_hours = [5]
    schedule_days  = [1, 3]
    job_type       = "daily"
  }
]`, "jobs")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	spec, err := FromRecord(doc[0])
	if err != nil {
		t.Fatalf("FromRecord() error = %v", err)
	}
	if spec.Name != "attribution_daily" || spec.Description != "Attribution models" {
		t.Fatalf("spec = %+v", spec)
	}
	if len(spec.ExecuteSteps) != 2 || spec.ExecuteSteps[1] != "dbt test" {
		t.Fatalf("steps = %v", spec.ExecuteSteps)
	}
	if spec.Threads == nil || *spec.Threads != 8 {
		t.Fatalf("threads = %v", spec.Threads)
	}
	if spec.TargetName == nil || *spec.TargetName != "prod" {
		t.Fatalf("target = %v", spec.TargetName)
	}
	if spec.GenerateDocs == nil || *spec.GenerateDocs {
		t.Fatalf("generate_docs = %v", spec.GenerateDocs)
	}
	if spec.RunGenerateSources != nil {
		t.Fatalf("run_generate_sources = %v, want unset", *spec.RunGenerateSources)
	}
	if !equalInts(spec.ScheduleDays, []int{1, 3}) || !equalInts(spec.ScheduleHours, []int{5}) {
		t.Fatalf("schedule = %v/%v", spec.ScheduleHours, spec.ScheduleDays)
	}
}

func TestFromRecordTypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		record tfvars.Record
	}{
		{name: "threads as word", record: tfvars.Record{"threads": tfvars.StringValue("four")}},
		{name: "steps as ints", record: tfvars.Record{"execute_steps": tfvars.IntListValue([]int64{1})}},
		{name: "hours as strings", record: tfvars.Record{"schedule_hours": tfvars.StringListValue([]string{"6"})}},
		{name: "docs not bool", record: tfvars.Record{"generate_docs": tfvars.StringValue("maybe")}},
		{name: "name as list", record: tfvars.Record{"name": tfvars.StringListValue([]string{"a"})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRecord(tt.record); !errors.Is(err, errFieldType) {
				t.Fatalf("FromRecord() error = %v, want errFieldType", err)
			}
		})
	}
}

func TestIsBranchJob(t *testing.T) {
	ctx := fixedContext("main")
	tests := []struct {
		name        string
		jobName     string
		description string
		want        bool
	}{
		{name: "marker branch", jobName: "marketing-team-feat-jdoe-daily", description: "x (Branch: feat, User: jdoe)", want: true},
		{name: "marker protected", jobName: "marketing-team-daily-run-full", description: "x (Branch: main, User: ci)", want: false},
		{name: "name shape branch", jobName: "marketing-team-feat-jdoe-daily", want: true},
		{name: "name shape production", jobName: "marketing-team-daily", want: false},
		{name: "protected prefix", jobName: "marketing-team-main-jdoe-daily", want: false},
		{name: "other team", jobName: "analytics-team-feat-jdoe-daily", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.IsBranchJob(tt.jobName, tt.description); got != tt.want {
				t.Fatalf("IsBranchJob(%q) = %v, want %v", tt.jobName, got, tt.want)
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
