// Where: internal/domain/job/errors.go
// What: Shared error definitions for job specs.
// Why: Ensure consistent error wrapping without dynamic error creation.
package job

import "errors"

var (
	errNameRequired  = errors.New("job name is required")
	errStepsRequired = errors.New("execute_steps is required")
	errFieldType     = errors.New("unexpected field type")
)
