// Package main provides the entrypoint for eventbridge-explorer.
package main

import (
	"os"

	"github.com/isometry/eventbridge-explorer/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
