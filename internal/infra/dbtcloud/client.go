// Where: internal/infra/dbtcloud/client.go
// What: dbt Cloud v2 REST client for jobs and account resources.
// Why: Job workflows and discovery share one authenticated HTTP client.
package dbtcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
)

// DefaultHostURL is the multi-tenant dbt Cloud host.
const DefaultHostURL = "https://cloud.getdbt.com"

const defaultTimeout = 60 * time.Second

// Client talks to one dbt Cloud account.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for `<host>/api/v2/accounts/<accountID>`.
func New(accountID, token, hostURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errAccountRequired
	}
	if strings.TrimSpace(token) == "" {
		return nil, errTokenRequired
	}
	host := strings.TrimRight(strings.TrimSpace(hostURL), "/")
	if host == "" {
		host = DefaultHostURL
	}
	c := &Client{
		baseURL: fmt.Sprintf("%s/api/v2/accounts/%s", host, url.PathEscape(accountID)),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the account API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateJob creates a job.
func (c *Client) CreateJob(ctx context.Context, payload job.Payload) (Job, error) {
	var created Job
	if err := c.do(ctx, "create job", http.MethodPost, "/jobs/", payload, &created); err != nil {
		return Job{}, err
	}
	return created, nil
}

// UpdateJob replaces the job with the given id.
func (c *Client) UpdateJob(ctx context.Context, id int64, payload job.Payload) (Job, error) {
	body := struct {
		ID int64 `json:"id"`
		job.Payload
	}{ID: id, Payload: payload}
	var updated Job
	if err := c.do(ctx, "update job", http.MethodPost, jobPath(id), body, &updated); err != nil {
		return Job{}, err
	}
	return updated, nil
}

// DeleteJob deletes the job with the given id.
func (c *Client) DeleteJob(ctx context.Context, id int64) error {
	return c.do(ctx, "delete job", http.MethodDelete, jobPath(id), nil, nil)
}

// ListJobs lists jobs, filtered by project when projectID > 0.
func (c *Client) ListJobs(ctx context.Context, projectID int64) ([]Job, error) {
	path := "/jobs/"
	if projectID > 0 {
		path += "?project_id=" + strconv.FormatInt(projectID, 10)
	}
	var jobs []Job
	if err := c.do(ctx, "list jobs", http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListJobsRaw returns the undecoded jobs listing for caching.
func (c *Client) ListJobsRaw(ctx context.Context, projectID int64) ([]byte, error) {
	resource := "jobs"
	if projectID > 0 {
		resource += "/?project_id=" + strconv.FormatInt(projectID, 10)
	}
	return c.ListResource(ctx, resource)
}

// FindJobByName returns the first job named name, or nil.
func (c *Client) FindJobByName(ctx context.Context, name string, projectID int64) (*Job, error) {
	jobs, err := c.ListJobs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].Name == name {
			return &jobs[i], nil
		}
	}
	return nil, nil
}

// ListResource fetches `/<resource>/` and returns the raw response body.
func (c *Client) ListResource(ctx context.Context, resource string) ([]byte, error) {
	path := "/" + strings.Trim(resource, "/")
	if !strings.Contains(path, "?") {
		path += "/"
	}
	raw, err := c.send(ctx, "list "+strings.SplitN(strings.Trim(resource, "/"), "/", 2)[0], http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func jobPath(id int64) string {
	return fmt.Sprintf("/jobs/%d/", id)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	raw, err := c.send(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", op, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
