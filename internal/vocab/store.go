package vocab

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shinji-kodama/hangman-solver/internal/model"
)

//go:embed default_vocabulary.txt
var embeddedVocabulary string

// DefaultPath is the file looked up when no vocabulary is configured
// explicitly. It is resolved relative to the working directory.
const DefaultPath = "vocabulary.txt"

// Store holds an immutable, ordered word list plus a membership index.
type Store struct {
	words []string
	index map[string]struct{}
}

// New builds a Store from already-normalized words. Order is preserved
// and duplicates are kept.
func New(words []string) *Store {
	s := &Store{
		words: append([]string(nil), words...),
		index: make(map[string]struct{}, len(words)),
	}
	for _, w := range s.words {
		s.index[w] = struct{}{}
	}
	return s
}

// Default returns the embedded word list.
func Default() *Store {
	words, _ := Read(strings.NewReader(embeddedVocabulary))
	return New(words)
}

// LoadFile reads a vocabulary file from disk.
//
// Returns a CLIError with ExitVocabularyUnreadable if the file cannot be
// opened or read. No game can start without a vocabulary, so callers
// treat this as fatal.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitVocabularyUnreadable,
			fmt.Sprintf("failed to open vocabulary %s", path),
			err,
		)
	}
	defer func() { _ = f.Close() }()

	words, err := Read(f)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitVocabularyUnreadable,
			fmt.Sprintf("failed to read vocabulary %s", path),
			err,
		)
	}
	return New(words), nil
}

// Read normalizes every line of r into a word: trailing whitespace is
// trimmed and the result lowercased. Blank lines are dropped.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Normalize trims trailing whitespace and lowercases a raw entry.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimRightFunc(raw, unicode.IsSpace))
}

// FilterBySize returns the words whose length in letters equals n,
// preserving their original order.
func FilterBySize(words []string, n int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// Words returns a copy of the full word list.
func (s *Store) Words() []string {
	return append([]string(nil), s.words...)
}

// Len returns the number of loaded words, duplicates included.
func (s *Store) Len() int {
	return len(s.words)
}

// Contains reports whether w is a vocabulary member.
func (s *Store) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// OfSize returns the vocabulary words of length n.
func (s *Store) OfSize(n int) []string {
	return FilterBySize(s.words, n)
}

// Sizes returns the distinct word lengths present, ascending.
func (s *Store) Sizes() []int {
	seen := make(map[int]struct{})
	for _, w := range s.words {
		seen[utf8.RuneCountInString(w)] = struct{}{}
	}
	sizes := make([]int, 0, len(seen))
	for n := range seen {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	return sizes
}

// CountBySize returns how many words exist for each length.
func (s *Store) CountBySize() map[int]int {
	counts := make(map[int]int)
	for _, w := range s.words {
		counts[utf8.RuneCountInString(w)]++
	}
	return counts
}
