// Where: internal/infra/dbtcloud/types.go
// What: Response shapes for dbt Cloud v2 jobs and resources.
// Why: Only the fields the workflows read are decoded; raw JSON is kept for caching.
package dbtcloud

import (
	"encoding/json"
	"fmt"
)

// Job is a dbt Cloud job as returned by the API.
type Job struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	ProjectID     int64        `json:"project_id,omitempty"`
	EnvironmentID int64        `json:"environment_id,omitempty"`
	State         int          `json:"state,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	ExecuteSteps  []string     `json:"execute_steps,omitempty"`
	Triggers      JobTriggers  `json:"triggers"`
	Settings      JobSettings  `json:"settings"`
	Schedule      *JobSchedule `json:"schedule,omitempty"`
}

// Active reports whether the job is enabled.
func (j Job) Active() bool {
	return j.State == 1
}

type JobTriggers struct {
	GithubWebhook      bool `json:"github_webhook"`
	GitProviderWebhook bool `json:"git_provider_webhook"`
	Schedule           bool `json:"schedule"`
	OnMerge            bool `json:"on_merge"`
}

type JobSettings struct {
	Threads      *int   `json:"threads,omitempty"`
	GenerateDocs *bool  `json:"generate_docs,omitempty"`
	TargetName   string `json:"target_name,omitempty"`
}

// JobSchedule accepts both the flat and the nested `time.hours` layout.
type JobSchedule struct {
	Cron  string  `json:"cron,omitempty"`
	Hours IntList `json:"hours,omitempty"`
	Days  IntList `json:"days,omitempty"`
	Time  *struct {
		Hours IntList `json:"hours,omitempty"`
	} `json:"time,omitempty"`
}

// ScheduleHours returns the configured run hours.
func (s *JobSchedule) ScheduleHours() []int {
	if s == nil {
		return nil
	}
	if len(s.Hours) > 0 {
		return s.Hours
	}
	if s.Time != nil {
		return s.Time.Hours
	}
	return nil
}

// IntList decodes a JSON list of integers or a single integer.
type IntList []int

func (l *IntList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*l = IntList{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("decode int list: %w", err)
	}
	*l = many
	return nil
}

// JobList is the `{"data": [...]}` envelope of a jobs listing.
type JobList struct {
	Data []Job `json:"data"`
}

// Resource holds the fields the import generator reads from any listed object.
type Resource struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// ResourceList is the `{"data": [...]}` envelope of a resource listing.
type ResourceList struct {
	Data []Resource `json:"data"`
}

// DecodeResources decodes a raw resource listing.
func DecodeResources(raw []byte) ([]Resource, error) {
	var list ResourceList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return list.Data, nil
}

// DecodeJobs decodes a raw jobs listing.
func DecodeJobs(raw []byte) ([]Job, error) {
	var list JobList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return list.Data, nil
}

// CountItems returns the length of the `data` array in a raw listing.
func CountItems(raw []byte) int {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0
	}
	return len(envelope.Data)
}
