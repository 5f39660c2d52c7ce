package solver

import (
	"errors"

	"github.com/shinji-kodama/hangman-solver/internal/model"
)

// ErrExhausted is returned when every letter of the candidate set has
// already been revealed, so there is nothing left to guess.
var ErrExhausted = errors.New("solver: no unrevealed letter left to guess")

// Frequency is a letter tally that remembers the order in which letters
// were first seen.
type Frequency struct {
	counts map[rune]int
	order  []rune
}

// LetterFrequency counts every letter occurrence across words. A letter
// appearing twice in one word counts twice.
func LetterFrequency(words []string) Frequency {
	f := Frequency{counts: make(map[rune]int)}
	for _, w := range words {
		for _, r := range w {
			if _, seen := f.counts[r]; !seen {
				f.order = append(f.order, r)
			}
			f.counts[r]++
		}
	}
	return f
}

// Count returns the tally for letter, zero when it never occurred.
func (f Frequency) Count(letter rune) int {
	return f.counts[letter]
}

// Letters returns the tallied letters in first-seen order.
func (f Frequency) Letters() []rune {
	return append([]rune(nil), f.order...)
}

// Len returns the number of distinct letters.
func (f Frequency) Len() int {
	return len(f.order)
}

// Top returns the letter with the strictly highest count among those not
// rejected by skip. Ties resolve to the earliest first-seen letter.
func (f Frequency) Top(skip func(rune) bool) (rune, bool) {
	var (
		best  rune
		count int
		found bool
	)
	for _, r := range f.order {
		if skip != nil && skip(r) {
			continue
		}
		if c := f.counts[r]; !found || c > count {
			best, count, found = r, c, true
		}
	}
	return best, found
}

// NextGuessLetter picks the most frequent letter of words that is not
// already revealed in masked.
//
// Returns ErrExhausted when words is empty or every letter is revealed.
func NextGuessLetter(words []string, masked model.MaskedWord) (rune, error) {
	letter, ok := LetterFrequency(words).Top(masked.Contains)
	if !ok {
		return 0, ErrExhausted
	}
	return letter, nil
}
