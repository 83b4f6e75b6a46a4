package main

import (
	"os"

	"github.com/coronawarn/grenrc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
