// Where: internal/infra/config/resolve.go
// What: Merge flags, environment, settings file and defaults.
// Why: Commands read one resolved view instead of three sources.
package config

import (
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

// Flags are the global CLI flags that override other sources.
type Flags struct {
	Cache string
}

// Resolved is the effective configuration for one command run.
type Resolved struct {
	Env
	Cache        string
	PlanVarFile  string
	TerraformBin string
	JobModule    string
}

// Resolve applies precedence: flags > environment > settings file > defaults.
func Resolve(flags Flags, e Env, s Settings) Resolved {
	r := Resolved{Env: e}
	r.TeamName = firstNonEmpty(e.TeamName, s.TeamName, meta.DefaultTeam)
	r.HostURL = strings.TrimRight(firstNonEmpty(e.HostURL, s.HostURL, meta.DefaultHostURL), "/")
	r.Cache = firstNonEmpty(flags.Cache, s.Cache, ".")
	r.PlanVarFile = firstNonEmpty(s.PlanVarFile, meta.DefaultPlanVarFile)
	r.TerraformBin = firstNonEmpty(s.TerraformBin, meta.DefaultTerraformBin)
	r.JobModule = firstNonEmpty(s.JobModule, meta.DefaultJobModule)
	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
