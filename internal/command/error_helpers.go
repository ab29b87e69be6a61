// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Every command reports fatal errors the same way.
package command

import (
	"fmt"
	"io"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling. It honours --no-emoji.
func exitWithError(out io.Writer, cli CLI, err error) int {
	newUI(out, !cli.NoEmoji).Error(fmt.Sprintf("%v", err))
	return 1
}
