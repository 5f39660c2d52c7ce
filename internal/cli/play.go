package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/prompt"
	"github.com/shinji-kodama/hangman-solver/internal/render"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// playFlags holds the command-specific flags for the play command.
type playFlags struct {
	// trust plays without knowing the secret: the user enters only its
	// length and every answer is taken at face value.
	trust bool

	// noClear keeps earlier frames on screen.
	noClear bool
}

// playOutput is the JSON document printed at the end of a game.
type playOutput struct {
	// Result is embedded so its fields appear at the top level of the
	// document (outcome, word, turns, ...).
	game.Result

	// Vocabulary names the word list the game used: a path or "embedded".
	Vocabulary string `json:"vocabulary"`

	// Message is the closing line shown on screen, empty if the game did
	// not finish.
	Message string `json:"message"`
}

// NewPlayCommand creates the cobra command for "hangman-solver play".
//
// Usage:
//
//	hangman-solver play [flags]
//
// Flags:
//
//	--trust      Enter only the word length; answers are not checked against a word
//	--no-clear   Do not clear the terminal between turns
func NewPlayCommand() *cobra.Command {
	flags := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the solver",
		Long: `Play one game of hangman with the solver doing the guessing.

You are asked for a word from the vocabulary, then for the positions of
each letter the solver guesses (zero-based, separated by spaces). Hit
ENTER when the letter is not in your word. Answers that contradict your
word are rejected.

With --trust you only give the length of your word and the solver takes
your answers as they come.`,
		Example: `  # Classic game
  hangman-solver play

  # Keep the secret to yourself
  hangman-solver play --trust

  # Use a different word list and a shorter rope
  hangman-solver play --vocabulary words.txt --max-wrong 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags)
		},
	}

	// Flags are registered through a helper so root and play stay in sync.
	registerPlayFlags(cmd, flags)
	return cmd
}

// registerPlayFlags binds the play flags to cmd. The root command shares
// them because it runs a game when no subcommand is given.
func registerPlayFlags(cmd *cobra.Command, flags *playFlags) {
	// Local flags: unlike the persistent ones on root, these are not
	// inherited by simulate or vocab.
	cmd.Flags().BoolVar(&flags.trust, "trust", false, "Enter only the word length; answers are not checked")
	// The value itself is read back in resolveSettings, where it overrides
	// the noClear setting.
	cmd.Flags().BoolVar(&flags.noClear, "no-clear", false, "Do not clear the terminal between turns")
}

// runPlay executes the play command logic.
func runPlay(cmd *cobra.Command, flags *playFlags) error {
	// Step 1: Load the word list. Failure here is fatal: there is nothing
	// to guess from.
	store, source, err := loadVocabulary()
	if err != nil {
		return err
	}
	// A file of blank lines loads fine but cannot start a game.
	if store.Len() == 0 {
		return model.NewCLIError(model.ExitVocabularyUnreadable,
			fmt.Sprintf("vocabulary %s holds no words", source))
	}

	// The board and the questions share one stream. In JSON mode that is
	// stderr so stdout carries only the result document.
	screenOut := cmd.OutOrStdout()
	if IsJSONOutput() {
		screenOut = cmd.ErrOrStderr()
	}

	// Step 2: Ask for the secret (or its length). The prompter shares the
	// command context so Ctrl-C interrupts a pending question.
	p := prompt.New(cmd.Context(), cmd.InOrStdin(), screenOut)
	g, oracle, err := startGame(p, store, flags.trust)
	if err != nil {
		return err
	}

	// Step 3: Play. Clearing only ever happens on a real terminal, even
	// when the setting allows it.
	screen := render.New(screenOut, settings.MaxWrongGuesses, render.WithClear(!settings.NoClear))
	VerboseLog("Starting game: %d candidates, trust=%v", len(g.Candidates()), flags.trust)

	result, err := game.Play(cmd.Context(), g, game.Options{
		Oracle:    oracle,
		Responder: p,
		Renderer:  screen,
		Logger:    logger.With(zap.String("vocabulary", source)),
	})
	if err != nil {
		// Cancellation, closed input and exhaustion are mapped to their
		// exit codes by Execute.
		return err
	}

	// Step 4: In text mode the final frame already shows the outcome.
	// JSON mode prints the result document on stdout.
	if IsJSONOutput() {
		return writeJSON(cmd.OutOrStdout(), playOutput{
			Result:     result,
			Vocabulary: source,
			Message:    g.Message(),
		})
	}
	return nil
}

// startGame asks for the secret word, or only its length in trust mode,
// and creates the game. The returned oracle is nil in trust mode.
func startGame(p *prompt.Prompter, store *vocab.Store, trust bool) (*game.Game, game.Oracle, error) {
	if trust {
		// Only lengths present in the vocabulary are accepted, so StartBlind
		// always finds candidates.
		length, err := p.Length(store.Sizes())
		if err != nil {
			return nil, nil, err
		}
		g, err := game.StartBlind(store, length, settings.MaxWrongGuesses)
		return g, nil, err
	}

	// The prompt already insists on a vocabulary member; Start checks it
	// again for callers that bypass the prompt.
	word, err := p.Word(store)
	if err != nil {
		return nil, nil, err
	}
	g, err := game.Start(store, word, settings.MaxWrongGuesses)
	if err != nil {
		return nil, nil, err
	}
	// The oracle lets Play verify every answer against the real word.
	return g, game.SecretOracle(word), nil
}

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
