// Where: cmd/dbtops/main.go
// What: CLI entrypoint.
// Why: Execute dbtops commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/dbt-marketing-analytics/dbtops/internal/command"
)

func main() {
	deps, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(command.Run(os.Args[1:], deps))
}
