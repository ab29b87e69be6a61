// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep names and defaults shared by commands and config in one place.
package meta

const (
	// Project Identity
	AppName   = "dbtops"
	UserAgent = "dbtops-cli"

	// Configuration
	SettingsFile        = "dbtops.yaml"
	DefaultTeam         = "analytics-team"
	DefaultHostURL      = "https://cloud.getdbt.com"
	DefaultPlanVarFile  = "env_file/prod_env.tfvars"
	DefaultTerraformBin = "terraform"
	DefaultJobModule    = "module.team_jobs"

	// Output Layout
	ResourceDiscoveryDir = "dbt_discovery"
	ResourceCommandsFile = "import_commands.txt"
	JobsListName         = "jobs"
)
