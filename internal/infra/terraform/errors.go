// Where: internal/infra/terraform/errors.go
// What: Sentinel errors for the terraform wrapper.
// Why: A Terraform without a runner fails loudly instead of panicking.
package terraform

import "errors"

var errRunnerNotConfigured = errors.New("command runner is not configured")
