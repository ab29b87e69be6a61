// Where: internal/infra/config/env.go
// What: Environment variables read by dbtops commands.
// Why: CI pipelines configure the tool entirely through the environment.
package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Env mirrors the environment variables understood by dbtops.
type Env struct {
	AccountID            string `env:"DBTCLOUD_ACCOUNT_ID"`
	Token                string `env:"DBTCLOUD_TOKEN"`
	HostURL              string `env:"DBTCLOUD_HOST_URL"`
	ProjectID            int64  `env:"PROJECT_ID"`
	EnvironmentID        int64  `env:"ENVIRONMENT_ID"`
	ProdEnvironmentID    int64  `env:"PROD_ENVIRONMENT_ID"`
	StagingEnvironmentID int64  `env:"STAGING_ENVIRONMENT_ID"`
	TeamName             string `env:"TEAM_NAME"`
	Branch               string `env:"CI_COMMIT_REF_SLUG" envDefault:"local"`
	User                 string `env:"GITLAB_USER_LOGIN" envDefault:"unknown"`
	CommitSHA            string `env:"CI_COMMIT_SHA" envDefault:"unknown"`
	S3Endpoint           string `env:"DBTOPS_S3_ENDPOINT"`
	S3AccessKey          string `env:"DBTOPS_S3_ACCESS_KEY"`
	S3SecretKey          string `env:"DBTOPS_S3_SECRET_KEY"`
	AWSRegion            string `env:"AWS_REGION"`
}

// Required variable names.
const (
	VarAccountID     = "DBTCLOUD_ACCOUNT_ID"
	VarToken         = "DBTCLOUD_TOKEN"
	VarProjectID     = "PROJECT_ID"
	VarEnvironmentID = "ENVIRONMENT_ID"
)

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadEnvFrom parses the given variables instead of the process environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Require fails when any of the named variables is unset.
func (e Env) Require(names ...string) error {
	set := map[string]string{
		VarAccountID:             e.AccountID,
		VarToken:                 e.Token,
		VarProjectID:             formatID(e.ProjectID),
		VarEnvironmentID:         formatID(e.EnvironmentID),
		"PROD_ENVIRONMENT_ID":    formatID(e.ProdEnvironmentID),
		"STAGING_ENVIRONMENT_ID": formatID(e.StagingEnvironmentID),
	}
	var missing []string
	for _, name := range names {
		if set[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %v", ErrMissingEnv, missing)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
