// Package main provides the monhealth food diary CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/monhealth/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
