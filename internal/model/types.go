package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Placeholder marks a position of the masked word that is still unknown.
const Placeholder = '_'

// Outcome represents the lifecycle state of a single game.
// The state transitions are:
//
//	[Init] → InProgress → Solved
//	                    → Failed
type Outcome string

const (
	// OutcomeInProgress indicates the solver is still guessing.
	OutcomeInProgress Outcome = "in-progress"

	// OutcomeSolved indicates the candidate set narrowed to exactly one word.
	OutcomeSolved Outcome = "solved"

	// OutcomeFailed indicates the wrong-guess counter reached its maximum.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	return string(o)
}

// IsTerminal reports whether no further turns may be played.
func (o Outcome) IsTerminal() bool {
	return o == OutcomeSolved || o == OutcomeFailed
}

// MaskedWord is the player-visible reconstruction of the secret word.
// Each position holds either Placeholder or a revealed lowercase letter.
// Its length is fixed when the game starts.
type MaskedWord []rune

// NewMaskedWord returns a masked word of n placeholders.
func NewMaskedWord(n int) MaskedWord {
	// Every position starts unknown.
	m := make(MaskedWord, n)
	for i := range m {
		m[i] = Placeholder
	}
	return m
}

// String returns the mask as a plain string, e.g. "c_t".
func (m MaskedWord) String() string {
	return string(m)
}

// Spaced returns the mask with a blank between positions, e.g. "c _ t".
func (m MaskedWord) Spaced() string {
	parts := make([]string, len(m))
	for i, r := range m {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// Contains reports whether letter has already been revealed.
func (m MaskedWord) Contains(letter rune) bool {
	for _, r := range m {
		if r == letter {
			return true
		}
	}
	return false
}

// IsRevealed reports whether position i holds a letter.
func (m MaskedWord) IsRevealed(i int) bool {
	return i >= 0 && i < len(m) && m[i] != Placeholder
}

// Reveal writes letter at every given position.
// Callers validate the positions; out-of-range indices are ignored.
func (m MaskedWord) Reveal(letter rune, positions []int) {
	for _, i := range positions {
		// Reveal must never panic on a bad index; the game validates
		// feedback before it gets here.
		if i >= 0 && i < len(m) {
			m[i] = letter
		}
	}
}

// Clone returns an independent copy of the mask.
func (m MaskedWord) Clone() MaskedWord {
	out := make(MaskedWord, len(m))
	copy(out, m)
	return out
}

// Guess records one turn: the letter the solver asked for and the
// positions the human reported for it. Empty positions mean "absent".
type Guess struct {
	// Letter is the guessed lowercase letter.
	Letter rune

	// Positions are the zero-based, strictly ascending indices reported
	// for Letter. Nil or empty when the letter is absent.
	Positions []int
}

// Absent reports whether the guess was answered with "not in the word".
func (g Guess) Absent() bool {
	return len(g.Positions) == 0
}

// MarshalJSON renders the letter as a one-character string so the turn
// history stays readable in --json output.
func (g Guess) MarshalJSON() ([]byte, error) {
	// An absent letter is written as [] rather than null so consumers can
	// always range over positions.
	positions := g.Positions
	if positions == nil {
		positions = []int{}
	}
	return json.Marshal(struct {
		Letter    string `json:"letter"`
		Positions []int  `json:"positions"`
	}{string(g.Letter), positions})
}

// String returns a compact representation: "e@[1 3]" or "x@-".
func (g Guess) String() string {
	if g.Absent() {
		return fmt.Sprintf("%c@-", g.Letter)
	}
	return fmt.Sprintf("%c@%v", g.Letter, g.Positions)
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to programmatically determine the outcome of
// a command. Losing a game is not an error and exits with ExitSuccess.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitVocabularyUnreadable indicates the word list could not be read.
	ExitVocabularyUnreadable ExitCode = 2

	// ExitConfigInvalid indicates the configuration file or environment
	// holds an unusable value.
	ExitConfigInvalid ExitCode = 3

	// ExitSolverExhausted indicates the solver ran out of letters to guess
	// while the game was still in progress.
	ExitSolverExhausted ExitCode = 4

	// ExitUnknownWord indicates a word given on the command line is not
	// part of the vocabulary.
	ExitUnknownWord ExitCode = 5

	// ExitUserCancelled indicates the user closed input or interrupted
	// an interactive prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	// Include the underlying error for context when available.
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
