package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/solver"
)

// Oracle knows where a letter occurs in the secret word.
type Oracle interface {
	Positions(letter rune) []int
}

// SecretOracle answers from a secret word held in memory.
type SecretOracle string

// Positions returns every index of letter in the secret, nil if absent.
func (s SecretOracle) Positions(letter rune) []int {
	return solver.Positions(string(s), letter)
}

// Question is what the solver asks the human each turn.
type Question struct {
	// Letter is the guessed letter.
	Letter rune

	// Mask is a snapshot of the masked word before this turn.
	Mask model.MaskedWord

	// Expected holds the true positions of Letter when Known is set.
	// An empty Expected with Known set means the letter is absent.
	Expected []int

	// Known reports whether an Oracle supplied Expected.
	Known bool
}

// Responder supplies the feedback for one question: the positions of the
// letter in ascending order, or none when it is absent.
type Responder interface {
	Respond(q Question) ([]int, error)
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(q Question) ([]int, error)

// Respond calls f(q).
func (f ResponderFunc) Respond(q Question) ([]int, error) { return f(q) }

// ErrNoOracle is returned by SelfPlay when the secret is unknown.
var ErrNoOracle = errors.New("game: self-play needs a known secret word")

// SelfPlay answers every question truthfully from the oracle's positions.
type SelfPlay struct{}

// Respond returns q.Expected.
func (SelfPlay) Respond(q Question) ([]int, error) {
	if !q.Known {
		return nil, ErrNoOracle
	}
	return q.Expected, nil
}

// Renderer refreshes the display. It is called once before the first turn
// and after every turn; message is empty until the game ends.
type Renderer interface {
	Render(mask model.MaskedWord, wrongGuesses int, message string)
}

// Options wires the collaborators of Play.
type Options struct {
	// Oracle is optional. Without it questions carry no expected positions.
	Oracle Oracle

	// Responder defaults to SelfPlay when nil.
	Responder Responder

	// Renderer is optional.
	Renderer Renderer

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Result summarizes a game once Play returns.
type Result struct {
	Outcome      model.Outcome `json:"outcome"`
	Word         string        `json:"word"`
	Turns        int           `json:"turns"`
	WrongGuesses int           `json:"wrongGuesses"`
	Candidates   int           `json:"candidates"`
	Guesses      []model.Guess `json:"guesses"`
}

// Result returns the summary of the game in its current state.
func (g *Game) Result() Result {
	return Result{
		Outcome:      g.outcome,
		Word:         g.mask.String(),
		Turns:        len(g.history),
		WrongGuesses: g.wrong,
		Candidates:   len(g.candidates),
		Guesses:      g.History(),
	}
}

// Play drives g turn by turn until it is solved or failed.
//
// The context is checked between turns; a cancelled context stops the
// loop with ctx.Err(). Any error from the solver or the responder ends the
// game early and is returned along with the partial result. With an Oracle,
// feedback that differs from the true positions is rejected with
// ErrInvalidFeedback before it can touch the candidates.
func Play(ctx context.Context, g *Game, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	responder := opts.Responder
	if responder == nil {
		responder = SelfPlay{}
	}
	render := func() {
		if opts.Renderer != nil {
			opts.Renderer.Render(g.Mask(), g.wrong, g.Message())
		}
	}

	render()
	for !g.outcome.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}

		letter, err := g.NextLetter()
		if err != nil {
			logger.Error("no letter left to guess",
				zap.String("mask", g.mask.String()),
				zap.Int("candidates", len(g.candidates)))
			return g.Result(), err
		}

		if ce := logger.Check(zap.DebugLevel, "guess"); ce != nil {
			freq := solver.LetterFrequency(g.candidates)
			ce.Write(
				zap.String("letter", string(letter)),
				zap.Int("count", freq.Count(letter)),
				zap.Int("distinctLetters", freq.Len()),
				zap.String("frequency", formatFrequency(freq)))
		}

		q := Question{Letter: letter, Mask: g.Mask()}
		if opts.Oracle != nil {
			q.Expected = opts.Oracle.Positions(letter)
			q.Known = true
		}

		positions, err := responder.Respond(q)
		if err != nil {
			return g.Result(), err
		}
		// With a known secret only the true positions are acceptable.
		if q.Known && !slices.Equal(positions, q.Expected) {
			return g.Result(), fmt.Errorf("%w: %c reported at %v, expected %v",
				ErrInvalidFeedback, letter, positions, q.Expected)
		}

		before := len(g.candidates)
		if _, err := g.Apply(letter, positions); err != nil {
			return g.Result(), err
		}
		logger.Debug("turn",
			zap.String("letter", string(letter)),
			zap.Ints("positions", positions),
			zap.Int("candidatesBefore", before),
			zap.Int("candidatesAfter", len(g.candidates)),
			zap.Int("wrong", g.wrong),
			zap.Stringer("outcome", g.outcome))

		render()
	}
	return g.Result(), nil
}

// formatFrequency renders a tally in first-seen order, e.g. "c:4 a:4 t:1".
func formatFrequency(f solver.Frequency) string {
	var b strings.Builder
	for i, r := range f.Letters() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c:%d", r, f.Count(r))
	}
	return b.String()
}
