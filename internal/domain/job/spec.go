// Where: internal/domain/job/spec.go
// What: Desired-state job definition and its coercion from parsed tfvars records.
// Why: Give tfvars, YAML, and JSON job files one typed shape before payload building.
package job

import (
	"fmt"
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/tfvars"
)

// Schedule types understood by BuildSchedule.
const (
	ScheduleEveryDay = "every_day"
	ScheduleWeekly   = "weekly"
	ScheduleCustom   = "custom"
	ScheduleManual   = "manual"
)

// Spec is one entry of the `jobs` list in a job configuration file.
type Spec struct {
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	ExecuteSteps       []string `json:"execute_steps"`
	Threads            *int     `json:"threads,omitempty"`
	TargetName         *string  `json:"target_name,omitempty"`
	GenerateDocs       *bool    `json:"generate_docs,omitempty"`
	RunGenerateSources *bool    `json:"run_generate_sources,omitempty"`
	ScheduleType       string   `json:"schedule_type,omitempty"`
	ScheduleHours      []int    `json:"schedule_hours,omitempty"`
	ScheduleDays       []int    `json:"schedule_days,omitempty"`
}

// Validate checks the fields the API cannot default.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errNameRequired
	}
	if len(s.ExecuteSteps) == 0 {
		return fmt.Errorf("job %s: %w", s.Name, errStepsRequired)
	}
	return nil
}

// FromRecord coerces a parsed record into a Spec. Unknown fields are ignored.
func FromRecord(record tfvars.Record) (Spec, error) {
	var spec Spec
	var err error

	if spec.Name, err = stringField(record, "name"); err != nil {
		return Spec{}, err
	}
	if spec.Description, err = stringField(record, "description"); err != nil {
		return Spec{}, err
	}
	if spec.ScheduleType, err = stringField(record, "schedule_type"); err != nil {
		return Spec{}, err
	}
	if spec.ExecuteSteps, err = stringListField(record, "execute_steps"); err != nil {
		return Spec{}, err
	}
	if spec.ScheduleHours, err = intListField(record, "schedule_hours"); err != nil {
		return Spec{}, err
	}
	if spec.ScheduleDays, err = intListField(record, "schedule_days"); err != nil {
		return Spec{}, err
	}

	if value, ok := record["threads"]; ok {
		n, isInt := value.Int()
		if !isInt {
			return Spec{}, fieldTypeError("threads", "an integer", value)
		}
		threads := int(n)
		spec.Threads = &threads
	}
	if value, ok := record["target_name"]; ok {
		target, err := stringField(record, "target_name")
		if err != nil {
			return Spec{}, fieldTypeError("target_name", "a string", value)
		}
		spec.TargetName = &target
	}
	if spec.GenerateDocs, err = boolField(record, "generate_docs"); err != nil {
		return Spec{}, err
	}
	if spec.RunGenerateSources, err = boolField(record, "run_generate_sources"); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func stringField(record tfvars.Record, key string) (string, error) {
	value, ok := record[key]
	if !ok {
		return "", nil
	}
	switch value.Kind() {
	case tfvars.KindString:
		s, _ := value.Str()
		return s, nil
	case tfvars.KindInt:
		n, _ := value.Int()
		return fmt.Sprintf("%d", n), nil
	default:
		return "", fieldTypeError(key, "a string", value)
	}
}

func stringListField(record tfvars.Record, key string) ([]string, error) {
	value, ok := record[key]
	if !ok {
		return nil, nil
	}
	if items, ok := value.Strings(); ok {
		return items, nil
	}
	if items, ok := value.Ints(); ok && len(items) == 0 {
		return []string{}, nil
	}
	return nil, fieldTypeError(key, "a list of strings", value)
}

func intListField(record tfvars.Record, key string) ([]int, error) {
	value, ok := record[key]
	if !ok {
		return nil, nil
	}
	if items, ok := value.Ints(); ok {
		out := make([]int, len(items))
		for i, n := range items {
			out[i] = int(n)
		}
		return out, nil
	}
	if items, ok := value.Strings(); ok && len(items) == 0 {
		return []int{}, nil
	}
	return nil, fieldTypeError(key, "a list of integers", value)
}

func boolField(record tfvars.Record, key string) (*bool, error) {
	value, ok := record[key]
	if !ok {
		return nil, nil
	}
	b, isBool := value.Bool()
	if !isBool {
		return nil, fieldTypeError(key, "true or false", value)
	}
	return &b, nil
}

func fieldTypeError(key, want string, got tfvars.Value) error {
	return fmt.Errorf("field %s: expected %s, got %s %s: %w", key, want, got.Kind(), got, errFieldType)
}
