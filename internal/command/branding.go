// Where: internal/command/branding.go
// What: CLI naming.
// Why: Wrapper scripts can rename the command shown in help and hints.
package command

import (
	"os"
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
)

func cliName() string {
	name := strings.TrimSpace(os.Getenv("CLI_CMD"))
	if name == "" {
		name = meta.AppName
	}
	return name
}
