// Package model defines the domain types and value objects for the
// hangman-solver CLI.
//
// This package contains pure data structures with no external dependencies.
// The masked word, guess records and game outcomes live only for the
// duration of one game; nothing here is ever persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
