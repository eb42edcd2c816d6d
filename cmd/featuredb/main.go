// Command featuredb extracts, assembles, renders, and injects the features
// page data.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/featuredb/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own errors; only surface the rest.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
