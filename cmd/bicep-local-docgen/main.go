// Package main provides the CLI for the Bicep local extension documentation
// generator.
package main

import (
	"os"

	"github.com/Gijsreyn/bicep-local-docgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
