package main

import (
	"os"

	"github.com/ouz-a/tern/colors"
	"github.com/ouz-a/tern/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		colors.RED.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
