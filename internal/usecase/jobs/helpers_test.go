// Where: internal/usecase/jobs/helpers_test.go
// What: Shared fakes for the jobs usecase tests.
// Why: Keep API and UI doubles in one place.
package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
)

type testUI struct {
	success []string
	info    []string
	warn    []string
	error   []string
}

func (u *testUI) Success(msg string) { u.success = append(u.success, msg) }
func (u *testUI) Info(msg string)    { u.info = append(u.info, msg) }
func (u *testUI) Warn(msg string)    { u.warn = append(u.warn, msg) }
func (u *testUI) Error(msg string)   { u.error = append(u.error, msg) }

func (u *testUI) Block(_, _ string, _ []ui.KeyValue) {}

type fakeAPI struct {
	jobs      []dbtcloud.Job
	created   []job.Payload
	updated   map[int64]job.Payload
	deleted   []int64
	failNames map[string]bool
	deleteErr map[int64]error
	nextID    int64
}

func (f *fakeAPI) CreateJob(_ context.Context, payload job.Payload) (dbtcloud.Job, error) {
	if f.failNames[payload.Name] {
		return dbtcloud.Job{}, &dbtcloud.APIError{Op: "create job", Status: 400, Body: "bad"}
	}
	f.nextID++
	f.created = append(f.created, payload)
	return dbtcloud.Job{ID: 1000 + f.nextID, Name: payload.Name}, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, id int64, payload job.Payload) (dbtcloud.Job, error) {
	if f.updated == nil {
		f.updated = map[int64]job.Payload{}
	}
	f.updated[id] = payload
	return dbtcloud.Job{ID: id, Name: payload.Name}, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, id int64) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
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

var errBoom = errors.New("boom")

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testContext(branch string) job.Context {
	return job.Context{
		Team:          "analytics-team",
		Branch:        branch,
		User:          "jdoe",
		Commit:        "0123456789abcdef",
		ProjectID:     7,
		EnvironmentID: 9,
		Now:           func() time.Time { return fixedNow },
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
