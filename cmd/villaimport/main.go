// Package main is the entry point for the villaimport CLI.
package main

import (
	"os"

	"github.com/poolvilladirect/villaimport/cmd/villaimport/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
