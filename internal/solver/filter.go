package solver

import "strings"

// ExcludeLetter returns the words that do not contain letter anywhere.
// Used when the human reports the letter absent.
func ExcludeLetter(words []string, letter rune) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !strings.ContainsRune(w, letter) {
			out = append(out, w)
		}
	}
	return out
}

// RestrictByPositions returns the words holding letter at every index in
// positions. Other occurrences of letter are not checked. A word shorter
// than a requested index is dropped.
func RestrictByPositions(words []string, letter rune, positions []int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if hasLetterAt(w, letter, positions) {
			out = append(out, w)
		}
	}
	return out
}

func hasLetterAt(word string, letter rune, positions []int) bool {
	runes := []rune(word)
	for _, i := range positions {
		if i < 0 || i >= len(runes) || runes[i] != letter {
			return false
		}
	}
	return true
}

// Positions returns every index at which letter occurs in word.
// The result is nil when the letter is absent.
func Positions(word string, letter rune) []int {
	var out []int
	for i, r := range []rune(word) {
		if r == letter {
			out = append(out, i)
		}
	}
	return out
}
