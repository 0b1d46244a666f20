// Package main is the entry point for the claudectl CLI/TUI.
package main

import (
	"os"

	"github.com/vdimko/claude-api-controller/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
