package prompt

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// newPrompter wires a Prompter to canned input and a capture buffer.
func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(context.Background(), strings.NewReader(input), out), out
}

func TestParseInts(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    []int
		wantErr bool
	}{
		{name: "empty means absent", reply: "", want: []int{}},
		{name: "blanks only", reply: "   \t", want: []int{}},
		{name: "single", reply: "2", want: []int{2}},
		{name: "sorted", reply: "3 1", want: []int{1, 3}},
		{name: "extra whitespace", reply: "  0\t 4  ", want: []int{0, 4}},
		{name: "not a number", reply: "1 x", wantErr: true},
		{name: "comma separated", reply: "1,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInts(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestAsk_Retries verifies that conversion and validation failures both
// lead to a re-prompt with the generic message.
func TestAsk_Retries(t *testing.T) {
	p, out := newPrompter("abc\n-4\n7\n")

	got, err := Ask(p, "Pick a number", strconv.Atoi, func(n int) bool { return n > 0 })
	require.NoError(t, err)

	assert.Equal(t, 7, got)
	assert.Equal(t, "Pick a number: "+InvalidInput+": "+InvalidInput+": ", out.String())
}

func TestAsk_InputClosed(t *testing.T) {
	p, _ := newPrompter("nope\n")

	_, err := Ask(p, "Pick a number", strconv.Atoi, nil)
	assert.ErrorIs(t, err, ErrInputClosed)
}

// TestAsk_CancelWhileWaiting cancels the context while Ask is blocked on
// input that never arrives.
func TestAsk_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := New(ctx, pr, io.Discard)

	done := make(chan error, 1)
	go func() {
		_, err := Ask(p, "Pick a number", strconv.Atoi, nil)
		done <- err
	}()

	// The write returns once the reader took the line, so Ask has moved
	// on to waiting for the next one.
	_, err := io.WriteString(pw, "not a number\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Ask did not return after cancellation")
	}
}

func TestAsk_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(ctx, strings.NewReader("7\n"), io.Discard)

	_, err := Ask(p, "Pick a number", strconv.Atoi, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWord(t *testing.T) {
	store := vocab.New([]string{"cat", "car"})
	p, out := newPrompter("dog\n  CAT \n")

	word, err := p.Word(store)
	require.NoError(t, err)

	assert.Equal(t, "cat", word)
	assert.Contains(t, out.String(), "Please enter a word which is in the vocabulary: ")
	assert.Contains(t, out.String(), InvalidInput)
}

func TestLength(t *testing.T) {
	p, out := newPrompter("four\n4\n5\n")

	n, err := p.Length([]int{3, 5})
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, 2, strings.Count(out.String(), InvalidInput))
}

func TestRespond_Known(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		want     []int
		retries  int
	}{
		{
			name:     "exact positions accepted",
			input:    "3 1\n",
			expected: []int{1, 3},
			want:     []int{1, 3},
		},
		{
			name:     "partial answer rejected",
			input:    "1\n1 3\n",
			expected: []int{1, 3},
			want:     []int{1, 3},
			retries:  1,
		},
		{
			name:     "enter for absent letter",
			input:    "\n",
			expected: nil,
			want:     []int{},
		},
		{
			name:     "claiming an absent letter is present is rejected",
			input:    "0\nx\n\n",
			expected: nil,
			want:     []int{},
			retries:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)

			got, err := p.Respond(game.Question{
				Letter:   'a',
				Mask:     model.NewMaskedWord(6),
				Expected: tt.expected,
				Known:    true,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.retries, strings.Count(out.String(), InvalidInput))
			assert.True(t, strings.HasPrefix(out.String(), "If the word contains [a], enter its indices. Else hit ENTER: "))
		})
	}
}

// TestRespond_Trusted covers blind games where only the shape of the
// answer can be checked.
func TestRespond_Trusted(t *testing.T) {
	mask := model.MaskedWord("c__")
	q := game.Question{Letter: 't', Mask: mask}

	tests := []struct {
		name    string
		input   string
		want    []int
		retries int
	}{
		{name: "free position", input: "2\n", want: []int{2}},
		{name: "absent", input: "\n", want: []int{}},
		{name: "revealed position rejected", input: "0\n2\n", want: []int{2}, retries: 1},
		{name: "out of range rejected", input: "3\n1 2\n", want: []int{1, 2}, retries: 1},
		{name: "duplicate rejected", input: "1 1\n1\n", want: []int{1}, retries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)

			got, err := p.Respond(q)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.retries, strings.Count(out.String(), InvalidInput))
		})
	}
}

// TestRespond_DrivesGame plays a full game through the prompter with a
// scripted human.
func TestRespond_DrivesGame(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := game.Start(store, "car", game.DefaultMaxWrongGuesses)
	require.NoError(t, err)

	// c, a, t (absent), r
	p, _ := newPrompter("0\n1\n\n2\n")

	result, err := game.Play(testContext(t), g, game.Options{
		Oracle:    game.SecretOracle("car"),
		Responder: p,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSolved, result.Outcome)
	assert.Equal(t, "car", result.Word)
	assert.Equal(t, 1, result.WrongGuesses)
}

// testContext returns a context canceled when the test finishes
// (Go 1.21 stand-in for testing.T.Context).
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
