// Package main is the entry point for the xmlwash CLI.
package main

import (
	"os"

	"github.com/jmylchreest/xmlwash/cmd/xmlwash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
