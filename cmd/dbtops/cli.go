// Where: cmd/dbtops/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/command"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/dbtcloud"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/interaction"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/terraform"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

var getwd = os.Getwd

// buildDependencies constructs the runtime dependencies used by the CLI.
func buildDependencies() (command.Dependencies, error) {
	workDir, err := getwd()
	if err != nil {
		return command.Dependencies{}, err
	}

	return command.Dependencies{
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		In:           os.Stdin,
		WorkDir:      workDir,
		Prompter:     interaction.NewPrompter(os.Stdin, os.Stdout),
		LoadEnv:      config.LoadEnv,
		NewAPI:       newDBTCloudAPI,
		CacheFactory: cache.AWSClientFactory{},
		Runner:       terraform.ExecRunner{},
		Now:          time.Now,
	}, nil
}

// newDBTCloudAPI builds the REST client from resolved credentials.
func newDBTCloudAPI(cfg config.Resolved) (command.API, error) {
	client, err := dbtcloud.New(cfg.AccountID, cfg.Token, cfg.HostURL, dbtcloud.WithUserAgent(meta.UserAgent))
	if err != nil {
		return nil, err
	}
	return client, nil
}
