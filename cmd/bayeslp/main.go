package main

import (
	"os"

	"github.com/ethche/BayesLP/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own diagnostics; the error carries the
		// exit code.
		os.Exit(cli.GetExitCode(err))
	}
}
