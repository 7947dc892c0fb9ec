// Package main is the entry point for the SynBalance CLI application.
// It signs in to the SynBalance login cluster and manages the shared session.
package main

import (
	"synbalance/cli/cmd"
)

// main is the entry point for the SynBalance CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
