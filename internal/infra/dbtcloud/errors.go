// Where: internal/infra/dbtcloud/errors.go
// What: Error types returned by the dbt Cloud client.
// Why: Callers report the HTTP status and body of failed requests.
package dbtcloud

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errAccountRequired = errors.New("dbt Cloud account id is required")
	errTokenRequired   = errors.New("dbt Cloud token is required")
)

// APIError is a non-2xx response from the dbt Cloud API.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: status %d - %s", e.Op, e.Status, body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
