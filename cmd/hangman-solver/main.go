// Package main is the entry point for the hangman-solver CLI.
//
// The binary plays the guessing side of hangman against a human, or
// against itself for whole word lists. It delegates all functionality to
// the internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/hangman-solver/internal/cli"
)

// version, commit, and date are set at build time via
// -ldflags "-X main.version=...". They are shown by --version.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
