// Where: internal/usecase/jobs/errors.go
// What: Errors for the jobs usecase.
// Why: Keep messages for config and cleanup failures in one place.
package jobs

import "errors"

var (
	errUnsupportedConfig = errors.New("unsupported job config format (want .tfvars, .yaml, .yml or .json)")
	errAPINotConfigured  = errors.New("dbt Cloud client is not configured")
	errBadCreatedAt      = errors.New("unrecognized created_at timestamp")
	errNegativeAge       = errors.New("older-than must not be negative")
)
