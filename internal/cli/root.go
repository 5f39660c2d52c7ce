// Package cli implements the cobra-based CLI commands for hangman-solver.
//
// Each subcommand (play, simulate, vocab) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags, settings and
// logging.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shinji-kodama/hangman-solver/internal/config"
	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/prompt"
	"github.com/shinji-kodama/hangman-solver/internal/solver"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose lowers the log level to debug.
	verbose bool

	// configPath points at an explicit config file.
	configPath string

	// vocabularyPath overrides the configured word list.
	vocabularyPath string

	// maxWrong overrides the configured failure threshold.
	maxWrong int
)

// Resolved in PersistentPreRunE and read by every subcommand.
var (
	settings config.Settings
	logger   = zap.NewNop()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running the root command without a subcommand starts an interactive
// game, exactly like "hangman-solver play".
func NewRootCommand() *cobra.Command {
	rootFlags := &playFlags{}

	rootCmd := &cobra.Command{
		Use:   "hangman-solver",
		Short: "A hangman player that guesses your word",
		Long: `hangman-solver plays the guessing side of hangman.

Think of a word from the vocabulary. The solver asks for one letter per
turn, always the most frequent letter among the words still possible,
and you tell it where that letter occurs. It wins when a single word is
left and loses after too many letters that are not in your word.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// A rejected word or a closed input is not a usage problem.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them itself (text or JSON based on --json).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand. The logger and the
		// settings depend on persistent flags, so they can only be built once
		// cobra has parsed the command line.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return resolveSettings(cmd)
		},
		// Flush buffered log entries. Sync errors on a terminal stderr are
		// expected and not worth reporting.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},

		// Without a subcommand the root behaves exactly like "play".
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, rootFlags)
		},
	}

	// PersistentFlags are inherited by all subcommands, so every command
	// reads the same --json, --verbose and settings overrides.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Settings overrides. They win over the config file and environment,
	// but only when given explicitly (see resolveSettings).
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml, .json or .jsonc)")
	rootCmd.PersistentFlags().StringVar(&vocabularyPath, "vocabulary", "", "Word list, one word per line (default: "+vocab.DefaultPath+")")
	rootCmd.PersistentFlags().IntVar(&maxWrong, "max-wrong", game.DefaultMaxWrongGuesses, "Wrong guesses before the solver loses")

	// The play flags are local to the root as well, because the root runs
	// a game when no subcommand is given.
	registerPlayFlags(rootCmd, rootFlags)

	// Register subcommands. Each subcommand is defined in its own file
	// (play.go, simulate.go, vocab.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewVocabCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// An interrupt or termination signal cancels the command context. Pending
// prompts return at once and the game loop stops; the run then exits with
// ExitUserCancelled.
func Execute(rootCmd *cobra.Command) {
	// NotifyContext replaces the default exit-on-SIGINT behaviour, so every
	// blocking step below must watch the context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	// Restore default signal handling: a second Ctrl-C while the error is
	// being printed terminates immediately.
	stop()

	if err != nil {
		// Every error leaves through a CLIError so the exit code is chosen
		// in one place.
		cliErr := classify(err)
		printError(os.Stderr, cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}
}

// classify converts any error returned by a command into a CLIError so
// Execute can pick the exit code.
func classify(err error) *model.CLIError {
	var cliErr *model.CLIError
	switch {
	// Commands that already picked an exit code keep it.
	case errors.As(err, &cliErr):
		return cliErr
	case errors.Is(err, solver.ErrExhausted):
		return model.WrapCLIError(model.ExitSolverExhausted, "the solver ran out of letters", err)
	case errors.Is(err, game.ErrUnknownWord):
		return model.WrapCLIError(model.ExitUnknownWord, "unknown word", err)
	// Closing stdin and pressing Ctrl-C both mean the user walked away.
	case errors.Is(err, prompt.ErrInputClosed), errors.Is(err, context.Canceled):
		return model.WrapCLIError(model.ExitUserCancelled, "game aborted", err)
	// Generic error: exit with code 1.
	default:
		return model.NewCLIError(model.ExitGeneralError, err.Error())
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		// JSON error format: {"error": {"message": ..., "detail": ...}}.
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	// Text format: "Error: <message>" on stderr.
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// newLogger builds the stderr logger: warnings and errors by default,
// everything with --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	// Production config writes to stderr. Console encoding with the
	// development encoder keeps lines readable next to the game board.
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	// Stack traces and sampling only add noise for a short-lived CLI.
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// resolveSettings loads the layered configuration and applies the
// command-line overrides that were set explicitly.
func resolveSettings(cmd *cobra.Command) error {
	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Changed distinguishes "--max-wrong 6" from an untouched default,
	// so a flag never silently overrides a config file value.
	flags := cmd.Flags()
	if flags.Changed("vocabulary") {
		s.Vocabulary = vocabularyPath
	}
	if flags.Changed("max-wrong") {
		s.MaxWrongGuesses = maxWrong
	}
	// no-clear is a local flag of play and root; subcommands without it
	// simply report it unchanged.
	if flags.Changed("no-clear") {
		if v, err := flags.GetBool("no-clear"); err == nil {
			s.NoClear = v
		}
	}
	// Flags are validated again because they were applied after Load.
	if err := s.Validate(); err != nil {
		return model.WrapCLIError(model.ExitConfigInvalid, "invalid command-line flags", err)
	}
	settings = s

	if s.Source != "" {
		VerboseLog("Loaded settings from %s", s.Source)
	}
	VerboseLog("Max wrong guesses: %d", s.MaxWrongGuesses)
	return nil
}

// loadVocabulary opens the configured word list. Without configuration it
// tries vocabulary.txt in the working directory and then the embedded
// list. It returns the store and a label describing where it came from.
func loadVocabulary() (*vocab.Store, string, error) {
	path := settings.Vocabulary
	if path == "" {
		// Nothing configured: a vocabulary.txt next to the user wins, the
		// embedded list is the last resort. An explicitly configured path
		// that is missing is an error, never a silent fallback.
		if _, err := os.Stat(vocab.DefaultPath); err != nil {
			VerboseLog("No %s found, using the embedded word list", vocab.DefaultPath)
			return vocab.Default(), "embedded", nil
		}
		path = vocab.DefaultPath
	}
	store, err := vocab.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	VerboseLog("Loaded %d words from %s", store.Len(), path)
	return store, path, nil
}

// VerboseLog writes a debug message. It is only visible with --verbose.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
