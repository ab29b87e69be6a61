// Where: internal/infra/dbtcloud/client_test.go
// What: Tests for the dbt Cloud HTTP client.
// Why: Request shapes and error mapping must stay stable.
package dbtcloud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		requests = append(requests, rec)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := New("123", "secret", srv.URL+"/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client, &requests
}

func TestNewValidatesCredentials(t *testing.T) {
	if _, err := New("", "t", ""); !errors.Is(err, errAccountRequired) {
		t.Fatalf("New() error = %v, want account required", err)
	}
	if _, err := New("1", " ", ""); !errors.Is(err, errTokenRequired) {
		t.Fatalf("New() error = %v, want token required", err)
	}
	c, err := New("1", "t", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.BaseURL() != "https://cloud.getdbt.com/api/v2/accounts/1" {
		t.Fatalf("BaseURL() = %q", c.BaseURL())
	}
}

func TestCreateJob(t *testing.T) {
	client, requests := newTestServer(t, http.StatusCreated, `{"data":{"id":55,"name":"analytics-team-daily"}}`)

	created, err := client.CreateJob(context.Background(), job.Payload{Name: "analytics-team-daily", ExecuteSteps: []string{"dbt run"}})
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}
	if created.ID != 55 || created.Name != "analytics-team-daily" {
		t.Fatalf("CreateJob() = %+v", created)
	}
	got := (*requests)[0]
	if got.Method != http.MethodPost || got.Path != "/api/v2/accounts/123/jobs/" {
		t.Fatalf("request = %s %s", got.Method, got.Path)
	}
	if got.Auth != "Token secret" {
		t.Fatalf("Authorization = %q", got.Auth)
	}
	if got.Body["name"] != "analytics-team-daily" {
		t.Fatalf("body = %v", got.Body)
	}
}

func TestUpdateJobSendsID(t *testing.T) {
	client, requests := newTestServer(t, http.StatusOK, `{"data":{"id":9,"name":"n"}}`)

	if _, err := client.UpdateJob(context.Background(), 9, job.Payload{Name: "n"}); err != nil {
		t.Fatalf("UpdateJob() error = %v", err)
	}
	got := (*requests)[0]
	if got.Method != http.MethodPost || got.Path != "/api/v2/accounts/123/jobs/9/" {
		t.Fatalf("request = %s %s", got.Method, got.Path)
	}
	if got.Body["id"] != float64(9) || got.Body["name"] != "n" {
		t.Fatalf("body = %v", got.Body)
	}
}

func TestDeleteJobAcceptsNoContent(t *testing.T) {
	client, requests := newTestServer(t, http.StatusNoContent, "")

	if err := client.DeleteJob(context.Background(), 4); err != nil {
		t.Fatalf("DeleteJob() error = %v", err)
	}
	if got := (*requests)[0]; got.Method != http.MethodDelete || got.Path != "/api/v2/accounts/123/jobs/4/" {
		t.Fatalf("request = %s %s", got.Method, got.Path)
	}
}

func TestListJobsAndFind(t *testing.T) {
	client, requests := newTestServer(t, http.StatusOK, `{"data":[
		{"id":1,"name":"a","state":1,"created_at":"2026-01-01T00:00:00Z","schedule":{"time":{"hours":[6,18]}}},
		{"id":2,"name":"b","schedule":{"hours":7}}
	]}`)

	jobs, err := client.ListJobs(context.Background(), 77)
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}
	if len(jobs) != 2 || !jobs[0].Active() || jobs[1].Active() {
		t.Fatalf("ListJobs() = %+v", jobs)
	}
	if hours := jobs[0].Schedule.ScheduleHours(); len(hours) != 2 || hours[1] != 18 {
		t.Fatalf("nested hours = %v", hours)
	}
	if hours := jobs[1].Schedule.ScheduleHours(); len(hours) != 1 || hours[0] != 7 {
		t.Fatalf("scalar hours = %v", hours)
	}
	if (*requests)[0].Query != "project_id=77" {
		t.Fatalf("query = %q", (*requests)[0].Query)
	}

	found, err := client.FindJobByName(context.Background(), "b", 0)
	if err != nil || found == nil || found.ID != 2 {
		t.Fatalf("FindJobByName(b) = %+v, %v", found, err)
	}
	if (*requests)[1].Query != "" {
		t.Fatalf("query without project = %q", (*requests)[1].Query)
	}
	missing, err := client.FindJobByName(context.Background(), "zzz", 0)
	if err != nil || missing != nil {
		t.Fatalf("FindJobByName(zzz) = %+v, %v", missing, err)
	}
}

func TestListResourceReturnsRawBody(t *testing.T) {
	body := `{"data":[{"id":1},{"id":2}],"status":{"code":200}}`
	client, requests := newTestServer(t, http.StatusOK, body)

	raw, err := client.ListResource(context.Background(), "environments")
	if err != nil {
		t.Fatalf("ListResource() error = %v", err)
	}
	if string(raw) != body {
		t.Fatalf("ListResource() = %s", raw)
	}
	if CountItems(raw) != 2 {
		t.Fatalf("CountItems() = %d", CountItems(raw))
	}
	if (*requests)[0].Path != "/api/v2/accounts/123/environments/" {
		t.Fatalf("path = %q", (*requests)[0].Path)
	}

	if _, err := client.ListJobsRaw(context.Background(), 5); err != nil {
		t.Fatalf("ListJobsRaw() error = %v", err)
	}
	if got := (*requests)[1]; got.Path != "/api/v2/accounts/123/jobs/" || got.Query != "project_id=5" {
		t.Fatalf("raw jobs request = %s ? %s", got.Path, got.Query)
	}
}

func TestNon2xxReturnsAPIError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound, `{"status":{"user_message":"not found"}}`)

	err := client.DeleteJob(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("DeleteJob() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Op != "delete job" {
		t.Fatalf("APIError = %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound() = false")
	}
}

func TestDecodeHelpers(t *testing.T) {
	resources, err := DecodeResources([]byte(`{"data":[{"id":3,"name":"warehouse","type":"snowflake"}]}`))
	if err != nil || len(resources) != 1 || resources[0].Type != "snowflake" {
		t.Fatalf("DecodeResources() = %+v, %v", resources, err)
	}
	if _, err := DecodeJobs([]byte(`not json`)); err == nil {
		t.Fatal("expected DecodeJobs() error")
	}
	if CountItems([]byte(`{}`)) != 0 {
		t.Fatal("CountItems({}) must be 0")
	}
}
