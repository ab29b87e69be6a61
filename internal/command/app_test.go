// Where: internal/command/app_test.go
// What: Tests for CLI routing and command wiring.
// Why: Ensure flags, env validation and dependencies reach the usecases.
package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
)

type fakeAPI struct {
	jobs      []dbtcloud.Job
	created   []job.Payload
	deleted   []int64
	resources map[string]string
}

func (f *fakeAPI) CreateJob(_ context.Context, payload job.Payload) (dbtcloud.Job, error) {
	f.created = append(f.created, payload)
	return dbtcloud.Job{ID: int64(100 + len(f.created)), Name: payload.Name}, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, id int64, payload job.Payload) (dbtcloud.Job, error) {
	return dbtcloud.Job{ID: id, Name: payload.Name}, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) ListJobs(context.Context, int64) ([]dbtcloud.Job, error) {
	return f.jobs, nil
}

func (f *fakeAPI) FindJobByName(_ context.Context, name string, _ int64) (*dbtcloud.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].Name == name {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) ListResource(_ context.Context, resource string) ([]byte, error) {
	body, ok := f.resources[resource]
	if !ok {
		return nil, &dbtcloud.APIError{Op: "list " + resource, Status: 404, Body: "not found"}
	}
	return []byte(body), nil
}

func (f *fakeAPI) ListJobsRaw(context.Context, int64) ([]byte, error) {
	return []byte(`{"data":[]}`), nil
}

type fakeRunner struct {
	calls [][]string
}

func (r *fakeRunner) record(name string, args []string) {
	r.calls = append(r.calls, append([]string{name}, args...))
}

func (r *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	r.record(name, args)
	return nil
}

func (r *fakeRunner) RunOutput(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	r.record(name, args)
	return []byte("Import successful!"), nil
}

type harness struct {
	out    bytes.Buffer
	dir    string
	api    *fakeAPI
	runner *fakeRunner
	vars   map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		dir:    t.TempDir(),
		api:    &fakeAPI{},
		runner: &fakeRunner{},
		vars: map[string]string{
			"DBTCLOUD_ACCOUNT_ID": "42",
			"DBTCLOUD_TOKEN":      "secret",
			"PROJECT_ID":          "7",
			"ENVIRONMENT_ID":      "9",
			"TEAM_NAME":           "analytics-team",
			"CI_COMMIT_REF_SLUG":  "main",
		},
	}
}

func (h *harness) run(args ...string) int {
	return Run(args, Dependencies{
		Out:     &h.out,
		ErrOut:  &h.out,
		WorkDir: h.dir,
		LoadEnv: func() (config.Env, error) { return config.LoadEnvFrom(h.vars) },
		NewAPI:  func(config.Resolved) (API, error) { return h.api, nil },
		Runner:  h.runner,
	})
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	h := newHarness(t)
	if code := h.run(); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.out.String(), "Usage:") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t)
	if code := h.run("version"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(h.out.String()) == "" {
		t.Fatal("expected version output")
	}
}

func TestRunDeployRequiresEnv(t *testing.T) {
	h := newHarness(t)
	delete(h.vars, "DBTCLOUD_TOKEN")
	delete(h.vars, "PROJECT_ID")
	h.write(t, "jobs.tfvars", `jobs = [ { name = "a", execute_steps = ["dbt run"] } ]`)

	if code := h.run("deploy", "--config", "jobs.tfvars"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.out.String(), "missing required environment variables: [DBTCLOUD_TOKEN PROJECT_ID]") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunFatalErrorHonoursNoEmoji(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{name: "emoji", args: []string{"deploy", "--config", "jobs.tfvars"}, want: "✗ missing required", notWant: "[error]"},
		{name: "plain", args: []string{"--no-emoji", "deploy", "--config", "jobs.tfvars"}, want: "[error] missing required", notWant: "✗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			delete(h.vars, "DBTCLOUD_TOKEN")
			h.write(t, "jobs.tfvars", `jobs = [ { name = "a", execute_steps = ["dbt run"] } ]`)

			if code := h.run(tt.args...); code != 1 {
				t.Fatalf("exit code = %d", code)
			}
			got := h.out.String()
			if !strings.Contains(got, tt.want) || strings.Contains(got, tt.notWant) {
				t.Fatalf("unexpected output: %q", got)
			}
		})
	}
}

func TestRunDeployCreatesJobs(t *testing.T) {
	h := newHarness(t)
	h.write(t, "jobs.tfvars", `jobs = [
  { name = "daily", execute_steps = ["dbt run"] },
]`)

	if code := h.run("deploy", "--config", "jobs.tfvars"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	if len(h.api.created) != 1 || h.api.created[0].Name != "analytics-team-daily" {
		t.Fatalf("created = %+v", h.api.created)
	}
	if h.api.created[0].ProjectID != 7 || h.api.created[0].EnvironmentID != 9 {
		t.Fatalf("payload ids = %+v", h.api.created[0])
	}
}

func TestRunDeployDryRunNeedsNoCredentials(t *testing.T) {
	h := newHarness(t)
	h.vars = map[string]string{"CI_COMMIT_REF_SLUG": "main"}
	h.write(t, "jobs.yaml", "jobs:\n  - name: daily\n    execute_steps: [\"dbt run\"]\n")

	if code := h.run("deploy", "--config", "jobs.yaml", "--dry-run"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	if len(h.api.created) != 0 {
		t.Fatalf("dry run created jobs: %+v", h.api.created)
	}
	if !strings.Contains(h.out.String(), "Job configuration valid: analytics-team-daily") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunCleanupDryRun(t *testing.T) {
	h := newHarness(t)
	h.api.jobs = []dbtcloud.Job{
		{ID: 1, Name: "analytics-team-feat-x-jdoe-daily", CreatedAt: "2020-01-01T00:00:00Z"},
		{ID: 2, Name: "analytics-team-daily", CreatedAt: "2020-01-01T00:00:00Z"},
	}
	if code := h.run("cleanup", "--older-than", "3", "--dry-run"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	if len(h.api.deleted) != 0 {
		t.Fatalf("dry run deleted jobs: %v", h.api.deleted)
	}
}

func TestRunDiscoverAndGenerateResources(t *testing.T) {
	h := newHarness(t)
	h.api.resources = map[string]string{
		"projects":     `{"data":[{"id":1,"name":"Core"}]}`,
		"environments": `{"data":[{"id":2,"name":"Prod"}]}`,
	}

	if code := h.run("--cache", "cache", "discover", "resources"); code != 0 {
		t.Fatalf("discover exit code = %d, output %q", code, h.out.String())
	}
	if _, err := os.Stat(filepath.Join(h.dir, "cache", "dbt_discovery", "projects.json")); err != nil {
		t.Fatalf("projects.json not cached: %v", err)
	}

	if code := h.run("--cache", "cache", "import", "generate-resources"); code != 0 {
		t.Fatalf("generate exit code = %d, output %q", code, h.out.String())
	}
	data, err := os.ReadFile(filepath.Join(h.dir, "import_commands.txt"))
	if err != nil {
		t.Fatalf("read import_commands.txt: %v", err)
	}
	if !strings.Contains(string(data), "terraform import dbtcloud_project.core 1") {
		t.Fatalf("unexpected commands:\n%s", data)
	}
}

func TestRunImportExecuteWithYes(t *testing.T) {
	h := newHarness(t)
	h.write(t, "job_import_commands.txt", "terraform import module.team_jobs.dbtcloud_job.daily 5\n")

	if code := h.run("import", "execute", "--yes"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	want := [][]string{
		{"terraform", "import", "module.team_jobs.dbtcloud_job.daily", "5"},
		{"terraform", "plan", "-var-file=env_file/prod_env.tfvars"},
	}
	if len(h.runner.calls) != len(want) {
		t.Fatalf("calls = %v", h.runner.calls)
	}
	for i := range want {
		if strings.Join(h.runner.calls[i], " ") != strings.Join(want[i], " ") {
			t.Fatalf("call %d = %v, want %v", i, h.runner.calls[i], want[i])
		}
	}
}

func TestRunImportGenerateJobsWithoutDiscovery(t *testing.T) {
	h := newHarness(t)
	if code := h.run("import", "generate-jobs"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.out.String(), "discover jobs") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInitWritesSettings(t *testing.T) {
	h := newHarness(t)
	if code := h.run("init"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	settings, _, err := config.LoadSettings(filepath.Join(h.dir, "dbtops.yaml"), "")
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.TeamName != "analytics-team" || settings.JobModule != "module.team_jobs" {
		t.Fatalf("settings = %+v", settings)
	}

	h.out.Reset()
	if code := h.run("init"); code != 1 {
		t.Fatalf("second init exit code = %d", code)
	}
	if !strings.Contains(h.out.String(), "already exists") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunSettingsFileOverridesDefaults(t *testing.T) {
	h := newHarness(t)
	h.write(t, "dbtops.yaml", "plan_var_file: env_file/staging.tfvars\nterraform_bin: tofu\n")
	h.write(t, "job_import_commands.txt", "terraform import x.y 1\n")

	if code := h.run("import", "execute", "-y"); code != 0 {
		t.Fatalf("exit code = %d, output %q", code, h.out.String())
	}
	last := h.runner.calls[len(h.runner.calls)-1]
	if strings.Join(last, " ") != "tofu plan -var-file=env_file/staging.tfvars" {
		t.Fatalf("plan call = %v", last)
	}
}

func TestRunInvalidProfile(t *testing.T) {
	h := newHarness(t)
	if code := h.run("discover", "jobs", "--profile", "finance"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.out.String(), "analytics or marketing") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	if _, handled := dispatchCommand("nope", CLI{}, Dependencies{}, &bytes.Buffer{}); handled {
		t.Fatal("expected unknown command to be unhandled")
	}
}
