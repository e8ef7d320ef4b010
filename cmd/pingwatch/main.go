// Package main is the entry point for the pingwatch CLI and dashboard.
package main

import (
	"os"

	"github.com/watchfire-io/pingwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
