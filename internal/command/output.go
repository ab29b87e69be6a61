// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/ui"
)

func newUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewUI(out, emoji)
}
