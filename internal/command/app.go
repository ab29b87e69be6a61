// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/cache"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/config"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/interaction"
	"github.com/dbt-marketing-analytics/dbtops/internal/infra/terraform"
	"github.com/dbt-marketing-analytics/dbtops/internal/version"
)

// Dependencies holds everything a command needs from the outside world.
// Nil fields fall back to the real implementations in Run.
type Dependencies struct {
	Out          io.Writer
	ErrOut       io.Writer
	In           *os.File
	WorkDir      string
	Prompter     interaction.Prompter
	LoadEnv      func() (config.Env, error)
	NewAPI       func(config.Resolved) (API, error)
	CacheFactory cache.ClientFactory
	Runner       terraform.CommandRunner
	Now          func() time.Time
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile  string `name:"env-file" help:"Path to .env file"`
	Settings string `name:"settings" help:"Path to dbtops.yaml (default: search upward)"`
	Cache    string `name:"cache" help:"Discovery cache location (directory or s3://bucket/prefix)"`
	NoEmoji  bool   `name:"no-emoji" help:"Disable emoji output"`

	Deploy   DeployCmd   `cmd:"" help:"Create or update jobs from a configuration file"`
	Cleanup  CleanupCmd  `cmd:"" help:"Delete old branch jobs"`
	List     ListCmd     `cmd:"" help:"List team jobs"`
	Discover DiscoverCmd `cmd:"" help:"Fetch dbt Cloud objects into the discovery cache"`
	Import   ImportCmd   `cmd:"" help:"Generate and run terraform import commands"`
	Convert  ConvertCmd  `cmd:"" help:"Convert discovered production jobs to tfvars"`
	Init     InitCmd     `cmd:"" help:"Write a dbtops.yaml settings file"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	DeployCmd struct {
		Config string `required:"" help:"Path to jobs configuration file (.tfvars, .yaml, or .json)"`
		DryRun bool   `name:"dry-run" help:"Validate configuration without deploying"`
	}

	CleanupCmd struct {
		OlderThan int  `name:"older-than" default:"7" help:"Delete jobs older than N days"`
		DryRun    bool `name:"dry-run" help:"Show what would be deleted without deleting"`
	}

	ListCmd struct {
		Details bool `help:"Show detailed job information"`
	}

	DiscoverCmd struct {
		Resources struct{}        `cmd:"" help:"Fetch projects, environments, connections, users, groups and repositories"`
		Jobs      DiscoverJobsCmd `cmd:"" help:"Fetch and classify team jobs"`
	}

	DiscoverJobsCmd struct {
		Profile string `enum:"analytics,marketing" default:"analytics" help:"Discovery profile (analytics/marketing)"`
	}

	ImportCmd struct {
		GenerateResources struct{}         `cmd:"" name:"generate-resources" help:"Write import_commands.txt from discovered resources"`
		GenerateJobs      struct{}         `cmd:"" name:"generate-jobs" help:"Write job import commands from discovered production jobs"`
		Execute           ImportExecuteCmd `cmd:"" help:"Run job import commands and terraform plan"`
		Complete          struct{}         `cmd:"" help:"Run terraform init and import discovered resources"`
	}

	ImportExecuteCmd struct {
		Yes  bool   `short:"y" help:"Skip the confirmation prompt"`
		File string `help:"Command file to execute (default: detected job commands file)"`
	}

	ConvertCmd struct{}

	InitCmd struct {
		Force bool `help:"Overwrite an existing settings file"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out
	ui := newUI(out, true)

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Manage dbt Cloud jobs and Terraform imports."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, cli, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, cli, out)
	}
	ui = newUI(out, !cli.NoEmoji)

	// Load environment file if provided or if .env exists in the working directory.
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", cli.EnvFile, err))
		}
	} else {
		dotenv := workPath(deps.WorkDir, ".env")
		if _, err := os.Stat(dotenv); err == nil {
			if err := godotenv.Load(dotenv); err != nil {
				ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
			}
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	ui.Warn("unknown command")
	return 1
}

type commandHandler func(context.Context, CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"deploy":                    runDeploy,
		"cleanup":                   runCleanup,
		"list":                      runList,
		"discover resources":        runDiscoverResources,
		"discover jobs":             runDiscoverJobs,
		"import generate-resources": runImportGenerateResources,
		"import generate-jobs":      runImportGenerateJobs,
		"import execute":            runImportExecute,
		"import complete":           runImportComplete,
		"convert":                   runConvert,
		"init":                      runInit,
		"version":                   runVersion,
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(context.Background(), cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ context.Context, cli CLI, _ Dependencies, out io.Writer) int {
	newUI(out, !cli.NoEmoji).Info(version.GetVersion())
	return 0
}

// runNoArgs prints a short usage summary.
func runNoArgs(out io.Writer) int {
	ui := newUI(out, true)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s deploy --config <file> [--dry-run]", cmd))
	ui.Info(fmt.Sprintf("  %s cleanup [--older-than 7] [--dry-run]", cmd))
	ui.Info(fmt.Sprintf("  %s list [--details]", cmd))
	ui.Info(fmt.Sprintf("  %s discover resources|jobs", cmd))
	ui.Info(fmt.Sprintf("  %s import generate-resources|generate-jobs|execute|complete", cmd))
	ui.Info(fmt.Sprintf("  %s convert", cmd))
	ui.Info(fmt.Sprintf("  %s init [--force]", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, cli CLI, out io.Writer) int {
	msg := err.Error()
	ui := newUI(out, !cli.NoEmoji)
	cmd := cliName()
	switch {
	case strings.Contains(msg, "--config"):
		ui.Warn("`--config` expects a path to a .tfvars, .yaml or .json job file.")
		ui.Info(fmt.Sprintf("Example: %s deploy --config env_file/prod_env.tfvars", cmd))
		return 1
	case strings.Contains(msg, "--env-file"):
		ui.Warn("`--env-file` expects a value. Provide a file path.")
		ui.Info(fmt.Sprintf("Example: %s list --env-file .env.prod", cmd))
		return 1
	case strings.Contains(msg, "--profile"):
		ui.Warn("`--profile` must be analytics or marketing.")
		ui.Info(fmt.Sprintf("Example: %s discover jobs --profile marketing", cmd))
		return 1
	}
	return exitWithError(out, cli, err)
}
