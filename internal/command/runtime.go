// Where: internal/command/runtime.go
// What: Per-run configuration, API client, cache and terraform wiring.
// Why: Commands share one resolution path for env, settings and flags.
package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dbt-marketing-analytics/dbtops/internal/domain/category"
	"github.com/dbt-marketing-analytics/dbtops/internal/domain/job"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/interaction"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/terraform"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/discover"
	"github.com/dbt-marketing-analytics/dbtops/internal/usecase/jobs"
)

var errAPIFactoryMissing = errors.New("dbt Cloud client factory is not configured")

// API is the dbt Cloud surface used by job and discovery commands.
type API interface {
	jobs.API
	discover.API
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			deps.WorkDir = wd
		}
	}
	if deps.LoadEnv == nil {
		deps.LoadEnv = config.LoadEnv
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}

func workPath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// session is the resolved state shared by one command run.
type session struct {
	cfg  config.Resolved
	deps Dependencies
	ui   ui.UserInterface
}

func newSession(cli CLI, deps Dependencies, required ...string) (session, error) {
	out := newUI(deps.Out, !cli.NoEmoji)
	env, err := deps.LoadEnv()
	if err != nil {
		return session{}, err
	}
	settingsPath := cli.Settings
	if settingsPath != "" {
		settingsPath = workPath(deps.WorkDir, settingsPath)
	}
	settings, _, err := config.LoadSettings(settingsPath, deps.WorkDir)
	if err != nil {
		return session{}, err
	}
	cfg := config.Resolve(config.Flags{Cache: cli.Cache}, env, settings)
	if err := cfg.Require(required...); err != nil {
		return session{}, err
	}
	return session{cfg: cfg, deps: deps, ui: out}, nil
}

func (s session) api() (API, error) {
	if s.deps.NewAPI == nil {
		return nil, errAPIFactoryMissing
	}
	return s.deps.NewAPI(s.cfg)
}

func (s session) jobContext() job.Context {
	return job.Context{
		Team:          s.cfg.TeamName,
		Branch:        s.cfg.Branch,
		User:          s.cfg.User,
		Commit:        s.cfg.CommitSHA,
		ProjectID:     s.cfg.ProjectID,
		EnvironmentID: s.cfg.EnvironmentID,
		Now:           s.deps.Now,
	}
}

func (s session) environments() category.Environments {
	return category.Environments{
		ProductionID: s.cfg.ProdEnvironmentID,
		StagingID:    s.cfg.StagingEnvironmentID,
	}
}

// openCache resolves the cache location relative to the working directory.
func (s session) openCache(ctx context.Context) (cache.Store, error) {
	location := s.cfg.Cache
	if !strings.HasPrefix(location, "s3://") {
		location = workPath(s.deps.WorkDir, location)
	}
	return cache.Open(ctx, location, s.deps.CacheFactory, cache.S3Config{
		Endpoint:  s.cfg.S3Endpoint,
		AccessKey: s.cfg.S3AccessKey,
		SecretKey: s.cfg.S3SecretKey,
		Region:    s.cfg.AWSRegion,
	})
}

func (s session) terraformCLI() terraform.Terraform {
	tf := terraform.New(s.cfg.TerraformBin, s.deps.WorkDir)
	if s.deps.Runner != nil {
		tf.Runner = s.deps.Runner
	}
	return tf
}

func (s session) prompter() interaction.Prompter {
	if s.deps.Prompter != nil {
		return s.deps.Prompter
	}
	return interaction.NewPrompter(s.deps.In, s.deps.Out)
}
