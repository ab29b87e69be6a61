// Where: internal/domain/job/payload.go
// What: Deployment context, job naming, and dbt Cloud request payloads.
// Why: Keep branch-aware naming and payload shape independent of the HTTP client.
package job

import (
	"fmt"
	"strings"
	"time"
)

const defaultThreads = 4

// ProtectedBranches deploy jobs under the plain `<team>-<name>` form.
var ProtectedBranches = []string{"main", "master", "production"}

// Context describes who is deploying and where.
type Context struct {
	Team          string
	Branch        string
	User          string
	Commit        string
	ProjectID     int64
	EnvironmentID int64
	Now           func() time.Time
}

// Payload is the dbt Cloud v2 job create/update body.
type Payload struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ProjectID     int64     `json:"project_id"`
	EnvironmentID int64     `json:"environment_id"`
	ExecuteSteps  []string  `json:"execute_steps"`
	Triggers      Triggers  `json:"triggers"`
	Settings      Settings  `json:"settings"`
	Schedule      *Schedule `json:"schedule,omitempty"`
	Tags          []string  `json:"tags"`
}

type Triggers struct {
	GithubWebhook      bool `json:"github_webhook"`
	GitProviderWebhook bool `json:"git_provider_webhook"`
	Schedule           bool `json:"schedule"`
	OnMerge            bool `json:"on_merge"`
}

type Settings struct {
	Threads            int     `json:"threads"`
	TargetName         *string `json:"target_name"`
	GenerateDocs       bool    `json:"generate_docs"`
	RunGenerateSources bool    `json:"run_generate_sources"`
}

// Schedule holds either a cron expression or day/hour lists.
type Schedule struct {
	Cron  string `json:"cron,omitempty"`
	Days  []int  `json:"days,omitempty"`
	Hours []int  `json:"hours,omitempty"`
}

// IsProtectedBranch reports whether branch deploys production-style job names.
func IsProtectedBranch(branch string) bool {
	for _, protected := range ProtectedBranches {
		if branch == protected {
			return true
		}
	}
	return false
}

// JobName returns the deployed name for a job base name.
func (c Context) JobName(base string) string {
	if IsProtectedBranch(c.Branch) {
		return fmt.Sprintf("%s-%s", c.Team, base)
	}
	return fmt.Sprintf("%s-%s-%s-%s", c.Team, c.Branch, c.User, base)
}

// Payload builds the API request body for spec.
func (c Context) Payload(spec Spec) (Payload, error) {
	if err := spec.Validate(); err != nil {
		return Payload{}, err
	}

	threads := defaultThreads
	if spec.Threads != nil {
		threads = *spec.Threads
	}
	generateDocs := true
	if spec.GenerateDocs != nil {
		generateDocs = *spec.GenerateDocs
	}
	runGenerateSources := false
	if spec.RunGenerateSources != nil {
		runGenerateSources = *spec.RunGenerateSources
	}

	return Payload{
		Name:          c.JobName(spec.Name),
		Description:   fmt.Sprintf("%s (Branch: %s, User: %s)", spec.Description, c.Branch, c.User),
		ProjectID:     c.ProjectID,
		EnvironmentID: c.EnvironmentID,
		ExecuteSteps:  append([]string(nil), spec.ExecuteSteps...),
		Triggers:      Triggers{Schedule: true},
		Settings: Settings{
			Threads:            threads,
			TargetName:         spec.TargetName,
			GenerateDocs:       generateDocs,
			RunGenerateSources: runGenerateSources,
		},
		Schedule: BuildSchedule(spec),
		Tags:     c.tags(),
	}, nil
}

func (c Context) tags() []string {
	commit := c.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return []string{
		"team:" + c.Team,
		"branch:" + c.Branch,
		"user:" + c.User,
		"commit:" + commit,
		"deployed:" + now().UTC().Format(time.RFC3339),
	}
}

// BuildSchedule maps schedule_type/hours/days onto the API schedule, or nil when the
// combination does not describe a schedule.
func BuildSchedule(spec Spec) *Schedule {
	scheduleType := spec.ScheduleType
	if scheduleType == "" {
		scheduleType = ScheduleEveryDay
	}
	hours := spec.ScheduleHours
	days := spec.ScheduleDays

	switch {
	case scheduleType == ScheduleCustom && len(hours) > 0 && len(days) > 0:
		return &Schedule{Cron: fmt.Sprintf("0 %s * * %s", joinInts(hours), joinInts(days))}
	case scheduleType == ScheduleEveryDay && len(hours) > 0:
		return &Schedule{Days: []int{1, 2, 3, 4, 5, 6, 7}, Hours: append([]int(nil), hours...)}
	case scheduleType == ScheduleWeekly && len(days) > 0 && len(hours) > 0:
		return &Schedule{Days: append([]int(nil), days...), Hours: append([]int(nil), hours...)}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
