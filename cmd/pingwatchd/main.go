// Package main is the entry point for the pingwatchd daemon.
package main

import (
	"os"

	"github.com/watchfire-io/pingwatch/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
