package main

import (
	"fmt"
	"os"

	"github.com/openkraft/devpilot/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "devpilot:", err)
		os.Exit(cli.ExitCode(err))
	}
}
