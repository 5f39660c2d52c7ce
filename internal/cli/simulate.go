package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/render"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// simulateFlags holds the command-specific flags for the simulate command.
type simulateFlags struct {
	// all plays every distinct vocabulary word.
	all bool

	// length limits --all to words of this length. Zero means any length.
	length int

	// summary prints only the aggregate line.
	summary bool
}

// Simulation is the record of one self-played game.
type Simulation struct {
	Secret string `json:"secret"`
	game.Result

	// Error is set when the game ended early, e.g. because the solver ran
	// out of letters.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a batch of simulations.
type Summary struct {
	Games        int     `json:"games"`
	Solved       int     `json:"solved"`
	Failed       int     `json:"failed"`
	Errors       int     `json:"errors"`
	AverageTurns float64 `json:"averageTurns"`
	AverageWrong float64 `json:"averageWrongGuesses"`
}

// simulateOutput is the JSON document printed by the simulate command.
type simulateOutput struct {
	Vocabulary      string       `json:"vocabulary"`
	MaxWrongGuesses int          `json:"maxWrongGuesses"`
	Games           []Simulation `json:"games,omitempty"`
	Summary         Summary      `json:"summary"`
}

// NewSimulateCommand creates the cobra command for "hangman-solver simulate".
//
// Usage:
//
//	hangman-solver simulate [word...] [flags]
//
// Flags:
//
//	--all           Play every word of the vocabulary
//	--length <n>    With --all, only words of this length
//	--summary       Print only the totals
func NewSimulateCommand() *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate [word...]",
		Short: "Let the solver play against itself",
		Long: `Play games without a human: each given word is the secret and every
question is answered truthfully. Useful to see how the solver fares on a
word list and how many wrong guesses it needs.`,
		Example: `  # Replay a few words
  hangman-solver simulate cat hangman

  # Measure the whole vocabulary
  hangman-solver simulate --all --summary

  # Five-letter words only, as JSON
  hangman-solver simulate --all --length 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Play every word of the vocabulary")
	cmd.Flags().IntVar(&flags.length, "length", 0, "With --all, only words of this length")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print only the totals")

	return cmd
}

// runSimulate executes the simulate command logic.
func runSimulate(cmd *cobra.Command, args []string, flags *simulateFlags) error {
	if flags.all == (len(args) > 0) {
		return model.NewCLIError(model.ExitGeneralError, "give either words or --all")
	}
	if flags.length != 0 && !flags.all {
		return model.NewCLIError(model.ExitGeneralError, "--length only applies to --all")
	}

	store, source, err := loadVocabulary()
	if err != nil {
		return err
	}

	secrets, err := selectSecrets(store, args, flags)
	if err != nil {
		return err
	}
	VerboseLog("Simulating %d games from %s", len(secrets), source)

	stderr := cmd.ErrOrStderr()
	bar := progressbar.NewOptions(len(secrets),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(len(secrets) > 1 && render.IsTerminal(stderr)),
	)

	sims := make([]Simulation, 0, len(secrets))
	for _, secret := range secrets {
		sim, err := simulateOne(cmd, store, secret)
		if err != nil {
			return err
		}
		sims = append(sims, sim)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	summary := Summarize(sims)
	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		doc := simulateOutput{
			Vocabulary:      source,
			MaxWrongGuesses: settings.MaxWrongGuesses,
			Summary:         summary,
		}
		if !flags.summary {
			doc.Games = sims
		}
		return writeJSON(out, doc)
	}
	if !flags.summary {
		printSimulationsText(out, sims)
	}
	printSummaryText(out, summary)
	return nil
}

// selectSecrets resolves the words to play. Words from the command line
// are normalized and must be vocabulary members.
func selectSecrets(store *vocab.Store, args []string, flags *simulateFlags) ([]string, error) {
	if !flags.all {
		secrets := make([]string, 0, len(args))
		for _, arg := range args {
			w := vocab.Normalize(strings.TrimSpace(arg))
			if !store.Contains(w) {
				return nil, model.NewCLIError(model.ExitUnknownWord,
					fmt.Sprintf("%q is not in the vocabulary", arg))
			}
			secrets = append(secrets, w)
		}
		return secrets, nil
	}

	words := store.Words()
	if flags.length > 0 {
		words = vocab.FilterBySize(words, flags.length)
	}
	seen := make(map[string]struct{}, len(words))
	secrets := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		secrets = append(secrets, w)
	}
	if len(secrets) == 0 {
		return nil, model.NewCLIError(model.ExitUnknownWord, "no vocabulary word matches")
	}
	return secrets, nil
}

// simulateOne plays a single self-play game. Errors that only end this
// game are recorded in the Simulation; cancellation is returned.
func simulateOne(cmd *cobra.Command, store *vocab.Store, secret string) (Simulation, error) {
	g, err := game.Start(store, secret, settings.MaxWrongGuesses)
	if err != nil {
		return Simulation{}, err
	}

	result, err := game.Play(cmd.Context(), g, game.Options{
		Oracle: game.SecretOracle(secret),
		Logger: logger.With(zap.String("secret", secret)),
	})
	sim := Simulation{Secret: secret, Result: result}
	if err != nil {
		if cmd.Context().Err() != nil {
			return sim, err
		}
		logger.Warn("simulation ended early", zap.String("secret", secret), zap.Error(err))
		sim.Error = err.Error()
	}
	return sim, nil
}

// Summarize totals a batch of simulations. Averages are taken over the
// games that reached an outcome.
func Summarize(sims []Simulation) Summary {
	s := Summary{Games: len(sims)}
	var turns, wrong, finished int
	for _, sim := range sims {
		switch {
		case sim.Error != "":
			s.Errors++
			continue
		case sim.Outcome == model.OutcomeSolved:
			s.Solved++
		case sim.Outcome == model.OutcomeFailed:
			s.Failed++
		}
		finished++
		turns += sim.Turns
		wrong += sim.WrongGuesses
	}
	if finished > 0 {
		s.AverageTurns = float64(turns) / float64(finished)
		s.AverageWrong = float64(wrong) / float64(finished)
	}
	return s
}

// FormatGuesses renders a turn history compactly, e.g. "c@[0] x@- a@[1]".
// Returns "-" when no guess was made.
func FormatGuesses(guesses []model.Guess) string {
	if len(guesses) == 0 {
		return "-"
	}
	parts := make([]string, len(guesses))
	for i, g := range guesses {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}

// printSimulationsText outputs one row per game.
func printSimulationsText(w io.Writer, sims []Simulation) {
	fmt.Fprintf(w, "%-16s %-12s %-6s %-6s %s\n", "SECRET", "OUTCOME", "TURNS", "WRONG", "GUESSES")
	for _, sim := range sims {
		outcome := sim.Outcome.String()
		if sim.Error != "" {
			outcome = "error"
		}
		fmt.Fprintf(w, "%-16s %-12s %-6d %-6d %s\n",
			sim.Secret, outcome, sim.Turns, sim.WrongGuesses, FormatGuesses(sim.Guesses))
	}
}

// printSummaryText outputs the aggregate line.
func printSummaryText(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n%d games: %d solved, %d failed", s.Games, s.Solved, s.Failed)
	if s.Errors > 0 {
		fmt.Fprintf(w, ", %d errors", s.Errors)
	}
	fmt.Fprintf(w, " (%.2f turns, %.2f wrong guesses on average)\n", s.AverageTurns, s.AverageWrong)
}
