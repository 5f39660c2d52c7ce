package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
)

// InvalidInput replaces the prompt after a rejected answer.
const InvalidInput = "Invalid input. Try again"

// ErrInputClosed is returned when input ends before a valid answer.
var ErrInputClosed = errors.New("prompt: input closed")

// errRejected marks a converted value that failed validation.
var errRejected = errors.New("prompt: value not allowed")

// Prompter reads answers line by line from in and writes prompts to out.
//
// Lines are read by a background goroutine so that a blocked read never
// outlives the context: cancelling ctx makes the pending Ask return
// ctx.Err() at once.
type Prompter struct {
	ctx context.Context
	sc  *bufio.Scanner
	out io.Writer

	// lines is created by the first read. It is closed once the input
	// ends, after scanErr has been set.
	lines   chan string
	scanErr error
}

// New creates a Prompter bound to ctx. in is typically os.Stdin.
func New(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{ctx: ctx, sc: bufio.NewScanner(in), out: out}
}

// scan feeds lines to the reader side until the input ends or the
// context is done.
func (p *Prompter) scan() {
	defer close(p.lines)
	for p.sc.Scan() {
		select {
		case p.lines <- p.sc.Text():
		case <-p.ctx.Done():
			return
		}
	}
	p.scanErr = p.sc.Err()
}

// readLine waits for the next input line or for cancellation.
func (p *Prompter) readLine() (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", err
	}
	if p.lines == nil {
		p.lines = make(chan string)
		go p.scan()
	}

	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case line, ok := <-p.lines:
		if ok {
			return line, nil
		}
		// The channel is closed: either the input ended, or the scanner
		// stopped because the context finished in the meantime.
		if err := p.ctx.Err(); err != nil {
			return "", err
		}
		if p.scanErr != nil {
			return "", p.scanErr
		}
		return "", ErrInputClosed
	}
}

// Ask shows prompt and reads lines until convert succeeds and valid accepts
// the result. A nil valid accepts every converted value.
//
// Returns ErrInputClosed when the input ends and the context error when
// the Prompter's context is cancelled while waiting.
func Ask[T any](p *Prompter, prompt string, convert func(string) (T, error), valid func(T) bool) (T, error) {
	var zero T
	for {
		if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
			return zero, err
		}
		line, err := p.readLine()
		if err != nil {
			return zero, err
		}

		value, err := convert(line)
		if err == nil && valid != nil && !valid(value) {
			err = errRejected
		}
		if err == nil {
			return value, nil
		}
		// Any rejection, whatever its cause, gets the same generic prompt.
		prompt = InvalidInput
	}
}

// Vocabulary is the membership check Word needs.
type Vocabulary interface {
	Contains(word string) bool
}

// Word asks for the secret word until it is a vocabulary member.
func (p *Prompter) Word(words Vocabulary) (string, error) {
	return Ask(p, "Please enter a word which is in the vocabulary",
		func(reply string) (string, error) {
			return strings.ToLower(strings.TrimSpace(reply)), nil
		},
		words.Contains,
	)
}

// Length asks for the length of the secret word; it must be one of sizes.
func (p *Prompter) Length(sizes []int) (int, error) {
	return Ask(p, fmt.Sprintf("Please enter the length of your word %v", sizes),
		func(reply string) (int, error) {
			return strconv.Atoi(strings.TrimSpace(reply))
		},
		func(n int) bool { return slices.Contains(sizes, n) },
	)
}

// Respond asks where the guessed letter occurs. It satisfies
// game.Responder.
//
// With known expected positions the answer must match them exactly, an
// empty answer standing for "absent". Otherwise the answer must name
// distinct, in-range positions that are not revealed yet.
func (p *Prompter) Respond(q game.Question) ([]int, error) {
	valid := func(positions []int) bool {
		if q.Known {
			return slices.Equal(positions, q.Expected)
		}
		return plausible(positions, q.Mask)
	}
	return Ask(p,
		fmt.Sprintf("If the word contains [%c], enter its indices. Else hit ENTER", q.Letter),
		ParseInts,
		valid,
	)
}

func plausible(positions []int, mask model.MaskedWord) bool {
	for i, pos := range positions {
		if pos < 0 || pos >= len(mask) || mask.IsRevealed(pos) {
			return false
		}
		if i > 0 && pos == positions[i-1] {
			return false
		}
	}
	return true
}

// ParseInts converts whitespace-separated integers into a sorted slice.
// An empty reply yields an empty slice.
func ParseInts(reply string) ([]int, error) {
	fields := strings.Fields(reply)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parse index %q: %w", f, err)
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
