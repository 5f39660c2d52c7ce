package game

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/solver"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// DefaultMaxWrongGuesses is the number of absent reports that ends a
// game. It matches the drawable gallows stages minus the empty one.
const DefaultMaxWrongGuesses = 6

// Messages shown once a game reaches a terminal state.
const (
	MessageFailed = "GAME OVER!"
	MessageSolved = "I found your word!"
)

var (
	// ErrGameOver is returned when a turn is attempted on a finished game.
	ErrGameOver = errors.New("game: already finished")

	// ErrInvalidFeedback is returned for positions that are out of range
	// or not strictly ascending, and by Play for answers that contradict
	// a known secret.
	ErrInvalidFeedback = errors.New("game: invalid feedback")

	// ErrUnknownWord is returned when the secret is not in the vocabulary.
	ErrUnknownWord = errors.New("game: word is not in the vocabulary")

	// ErrNoCandidates is returned when no vocabulary word has the
	// requested length.
	ErrNoCandidates = errors.New("game: no vocabulary word has that length")
)

// Game is the state of one game from the solver's point of view.
type Game struct {
	candidates []string
	mask       model.MaskedWord
	wrong      int
	maxWrong   int
	outcome    model.Outcome
	history    []model.Guess
}

// Start begins a game for a secret word known to the program. The secret
// must be a vocabulary member; the candidate set is every vocabulary word
// of the same length.
func Start(store *vocab.Store, secret string, maxWrong int) (*Game, error) {
	if !store.Contains(secret) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, secret)
	}
	n := utf8.RuneCountInString(secret)
	return newGame(store.OfSize(n), n, maxWrong)
}

// StartBlind begins a game where only the length of the secret is known.
// Feedback is then taken as given.
func StartBlind(store *vocab.Store, length, maxWrong int) (*Game, error) {
	candidates := store.OfSize(length)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoCandidates, length)
	}
	return newGame(candidates, length, maxWrong)
}

func newGame(candidates []string, length, maxWrong int) (*Game, error) {
	if maxWrong < 1 {
		return nil, fmt.Errorf("max wrong guesses must be at least 1, got %d", maxWrong)
	}
	return &Game{
		candidates: candidates,
		mask:       model.NewMaskedWord(length),
		maxWrong:   maxWrong,
		outcome:    model.OutcomeInProgress,
	}, nil
}

// NextLetter returns the letter the solver guesses this turn.
func (g *Game) NextLetter() (rune, error) {
	if g.outcome.IsTerminal() {
		return 0, ErrGameOver
	}
	return solver.NextGuessLetter(g.candidates, g.mask)
}

// Apply records the feedback for letter and advances the state machine.
//
// Non-empty positions narrow the candidates to words holding letter at
// those indices and reveal them in the mask. Empty positions exclude every
// word containing letter and count one wrong guess.
func (g *Game) Apply(letter rune, positions []int) (model.Outcome, error) {
	if g.outcome.IsTerminal() {
		return g.outcome, ErrGameOver
	}
	if err := g.checkPositions(positions); err != nil {
		return g.outcome, err
	}

	if len(positions) > 0 {
		g.candidates = solver.RestrictByPositions(g.candidates, letter, positions)
		g.mask.Reveal(letter, positions)
	} else {
		g.candidates = solver.ExcludeLetter(g.candidates, letter)
		g.wrong++
	}
	g.history = append(g.history, model.Guess{
		Letter:    letter,
		Positions: append([]int(nil), positions...),
	})

	// Failure is checked first.
	switch {
	case g.wrong >= g.maxWrong:
		g.outcome = model.OutcomeFailed
	case len(g.candidates) == 1:
		g.outcome = model.OutcomeSolved
		g.mask = model.MaskedWord(g.candidates[0])
	}
	return g.outcome, nil
}

func (g *Game) checkPositions(positions []int) error {
	for i, p := range positions {
		if p < 0 || p >= len(g.mask) {
			return fmt.Errorf("%w: position %d outside 0..%d", ErrInvalidFeedback, p, len(g.mask)-1)
		}
		if i > 0 && p <= positions[i-1] {
			return fmt.Errorf("%w: positions %v are not strictly ascending", ErrInvalidFeedback, positions)
		}
	}
	return nil
}

// Outcome returns the current state.
func (g *Game) Outcome() model.Outcome { return g.outcome }

// Mask returns a copy of the masked word.
func (g *Game) Mask() model.MaskedWord { return g.mask.Clone() }

// Candidates returns a copy of the remaining candidate words.
func (g *Game) Candidates() []string { return append([]string(nil), g.candidates...) }

// WrongGuesses returns how many letters were reported absent.
func (g *Game) WrongGuesses() int { return g.wrong }

// MaxWrongGuesses returns the failure threshold.
func (g *Game) MaxWrongGuesses() int { return g.maxWrong }

// History returns the guesses made so far in turn order.
func (g *Game) History() []model.Guess { return append([]model.Guess(nil), g.history...) }

// Message returns the terminal message, empty while the game is running.
func (g *Game) Message() string {
	switch g.outcome {
	case model.OutcomeFailed:
		return MessageFailed
	case model.OutcomeSolved:
		return MessageSolved
	default:
		return ""
	}
}
