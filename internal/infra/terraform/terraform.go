// Where: internal/infra/terraform/terraform.go
// What: Terraform init, import and plan invocations.
// Why: Import workflows share one place that knows the terraform argv.
package terraform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DefaultBin is used when no binary is configured.
const DefaultBin = "terraform"

// Terraform runs the terraform CLI in Dir.
type Terraform struct {
	Bin    string
	Dir    string
	Runner CommandRunner
}

// ImportResult captures one import attempt.
type ImportResult struct {
	Address string
	ID      string
	Output  string
	Err     error
}

// OK reports whether the import succeeded.
func (r ImportResult) OK() bool {
	return r.Err == nil
}

// New returns a Terraform using ExecRunner.
func New(bin, dir string) Terraform {
	return Terraform{Bin: bin, Dir: dir, Runner: ExecRunner{}}
}

func (t Terraform) bin() string {
	if strings.TrimSpace(t.Bin) == "" {
		return DefaultBin
	}
	return t.Bin
}

// Init runs `terraform init`.
func (t Terraform) Init(ctx context.Context) error {
	if t.Runner == nil {
		return errRunnerNotConfigured
	}
	if err := t.Runner.Run(ctx, t.Dir, t.bin(), "init"); err != nil {
		return fmt.Errorf("terraform init: %w", err)
	}
	return nil
}

// Import runs `terraform import <address> <id>` and captures combined output.
func (t Terraform) Import(ctx context.Context, address, id string) ImportResult {
	result := ImportResult{Address: address, ID: id}
	if t.Runner == nil {
		result.Err = errRunnerNotConfigured
		return result
	}
	out, err := t.Runner.RunOutput(ctx, t.Dir, t.bin(), "import", address, id)
	result.Output = strings.TrimSpace(string(out))
	if err != nil {
		result.Err = fmt.Errorf("terraform import %s: %w", address, err)
	}
	return result
}

// ImportID is Import for numeric object ids.
func (t Terraform) ImportID(ctx context.Context, address string, id int64) ImportResult {
	return t.Import(ctx, address, strconv.FormatInt(id, 10))
}

// RunArgs runs terraform with raw arguments, capturing combined output.
func (t Terraform) RunArgs(ctx context.Context, args []string) ImportResult {
	result := ImportResult{}
	if len(args) >= 3 && args[0] == "import" {
		result.Address, result.ID = args[1], args[2]
	}
	if t.Runner == nil {
		result.Err = errRunnerNotConfigured
		return result
	}
	out, err := t.Runner.RunOutput(ctx, t.Dir, t.bin(), args...)
	result.Output = strings.TrimSpace(string(out))
	if err != nil {
		result.Err = fmt.Errorf("terraform %s: %w", strings.Join(args, " "), err)
	}
	return result
}

// Plan runs `terraform plan`, with -var-file when varFile is set.
func (t Terraform) Plan(ctx context.Context, varFile string) error {
	if t.Runner == nil {
		return errRunnerNotConfigured
	}
	args := []string{"plan"}
	if strings.TrimSpace(varFile) != "" {
		args = append(args, "-var-file="+varFile)
	}
	if err := t.Runner.Run(ctx, t.Dir, t.bin(), args...); err != nil {
		return fmt.Errorf("terraform plan: %w", err)
	}
	return nil
}
