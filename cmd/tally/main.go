// Command tally is a sortable product table with running totals.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/roach88/tally/internal/cli"
	"github.com/roach88/tally/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
