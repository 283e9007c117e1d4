// Package main is the entry point for the codetray CLI and tray.
package main

import (
	"os"

	"github.com/codetray-io/codetray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
