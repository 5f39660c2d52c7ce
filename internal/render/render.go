package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/shinji-kodama/hangman-solver/internal/model"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// Screen renders game state to a writer. It satisfies game.Renderer.
type Screen struct {
	out      io.Writer
	maxWrong int
	clear    bool

	gallows lipgloss.Style
	word    lipgloss.Style
	index   lipgloss.Style
	message lipgloss.Style
}

// Option customizes a Screen.
type Option func(*Screen)

// WithClear enables or disables clearing the display before each frame.
// Clearing is only ever done on terminals.
func WithClear(enabled bool) Option {
	return func(s *Screen) {
		s.clear = enabled && IsTerminal(s.out)
	}
}

// New creates a Screen writing to out. Colors follow the capabilities
// lipgloss detects for out, so plain writers get plain text.
func New(out io.Writer, maxWrong int, opts ...Option) *Screen {
	r := lipgloss.NewRenderer(out)
	s := &Screen{
		out:      out,
		maxWrong: maxWrong,
		clear:    IsTerminal(out),
		gallows:  r.NewStyle().Foreground(lipgloss.Color("244")),
		word:     r.NewStyle().Bold(true),
		index:    r.NewStyle().Faint(true),
		message:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render draws one frame.
func (s *Screen) Render(mask model.MaskedWord, wrong int, message string) {
	var b strings.Builder
	if s.clear {
		b.WriteString(clearScreen)
	}

	b.WriteString("\n")
	for _, line := range strings.Split(Gallows[Stage(wrong, s.maxWrong)], "\n") {
		b.WriteString(s.gallows.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(s.word.Render(mask.Spaced()))
	b.WriteString("\n")
	b.WriteString(s.index.Render(IndexRow(len(mask))))
	b.WriteString("\n")
	if message != "" {
		b.WriteString(s.message.Render(message))
		b.WriteString("\n")
	}

	_, _ = fmt.Fprint(s.out, b.String())
}

// IndexRow returns the position numbers for a word of n letters,
// separated like the masked word: "0 1 2".
func IndexRow(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(i)
	}
	return strings.Join(parts, " ")
}

// IsTerminal reports whether w is a character device such as a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
