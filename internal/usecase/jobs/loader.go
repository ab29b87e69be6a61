// Where: internal/usecase/jobs/loader.go
// What: Load job specs from .tfvars, YAML, or JSON files.
// Why: Deploy accepts the tfvars used by Terraform plus the older YAML/JSON layouts.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/tfvars"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
	"sigs.k8s.io/yaml"
)

// LoadedSpec is one job entry; Err is set when the entry could not be coerced.
type LoadedSpec struct {
	Spec job.Spec
	Err  error
}

// Label names the entry for reporting.
func (l LoadedSpec) Label() string {
	if strings.TrimSpace(l.Spec.Name) == "" {
		return "unknown"
	}
	return l.Spec.Name
}

// LoadSpecs reads the `jobs` list from path. The format follows the extension.
func LoadSpecs(path string) ([]LoadedSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tfvars":
		return loadTfvars(string(data))
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode yaml job config: %w", err)
		}
		return loadJSON(converted)
	case ".json":
		return loadJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedConfig, path)
	}
}

func loadTfvars(text string) ([]LoadedSpec, error) {
	doc, err := tfvars.Parse(text, meta.JobsListName)
	if err != nil {
		return nil, fmt.Errorf("parse tfvars job config: %w", err)
	}
	out := make([]LoadedSpec, 0, len(doc))
	for _, record := range doc {
		spec, err := job.FromRecord(record)
		if err != nil {
			if name, ok := record["name"].Str(); ok {
				spec.Name = name
			}
		}
		out = append(out, LoadedSpec{Spec: spec, Err: err})
	}
	return out, nil
}

func loadJSON(data []byte) ([]LoadedSpec, error) {
	var doc struct {
		Jobs []json.RawMessage `json:"jobs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode job config: %w", err)
	}
	out := make([]LoadedSpec, 0, len(doc.Jobs))
	for _, raw := range doc.Jobs {
		var spec job.Spec
		if err := json.Unmarshal(raw, &spec); err != nil {
			var named struct {
				Name string `json:"name"`
			}
			_ = json.Unmarshal(raw, &named)
			out = append(out, LoadedSpec{Spec: job.Spec{Name: named.Name}, Err: fmt.Errorf("decode job: %w", err)})
			continue
		}
		out = append(out, LoadedSpec{Spec: spec})
	}
	return out, nil
}
