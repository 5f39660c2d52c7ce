package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shinji-kodama/hangman-solver/internal/model"
	"github.com/shinji-kodama/hangman-solver/internal/vocab"
)

// renderCall is one recorded Render invocation.
type renderCall struct {
	mask    string
	wrong   int
	message string
}

// recordingRenderer collects render calls instead of drawing.
type recordingRenderer struct {
	calls []renderCall
}

func (r *recordingRenderer) Render(mask model.MaskedWord, wrong int, message string) {
	r.calls = append(r.calls, renderCall{mask.String(), wrong, message})
}

// TestPlay_CatScenario walks the cat/car/can/cap game: 'c' and 'a' keep all
// four candidates, 't' leaves only "cat".
func TestPlay_CatScenario(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	renderer := &recordingRenderer{}
	result, err := Play(context.Background(), g, Options{
		Oracle:   SecretOracle("cat"),
		Renderer: renderer,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSolved, result.Outcome)
	assert.Equal(t, "cat", result.Word)
	assert.Equal(t, 3, result.Turns)
	assert.Equal(t, 0, result.WrongGuesses)
	assert.Equal(t, 1, result.Candidates)
	wantGuesses := []model.Guess{
		{Letter: 'c', Positions: []int{0}},
		{Letter: 'a', Positions: []int{1}},
		{Letter: 't', Positions: []int{2}},
	}
	if diff := cmp.Diff(wantGuesses, result.Guesses); diff != "" {
		t.Errorf("guesses mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []renderCall{
		{"___", 0, ""},
		{"c__", 0, ""},
		{"ca_", 0, ""},
		{"cat", 0, MessageSolved},
	}, renderer.calls)
}

// TestPlay_QuestionsCarryExpectedPositions checks what a responder sees.
func TestPlay_QuestionsCarryExpectedPositions(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := Start(store, "cap", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	var questions []Question
	responder := ResponderFunc(func(q Question) ([]int, error) {
		questions = append(questions, q)
		return q.Expected, nil
	})

	result, err := Play(context.Background(), g, Options{Oracle: SecretOracle("cap"), Responder: responder})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSolved, result.Outcome)
	assert.Equal(t, "cap", result.Word)

	require.NotEmpty(t, questions)
	assert.True(t, questions[0].Known)
	assert.Equal(t, "___", questions[0].Mask.String())
	assert.Equal(t, "c", string(questions[0].Letter))
	assert.Equal(t, []int{0}, questions[0].Expected)

	// 't' is absent from "cap": a wrong guess, then 'r', 'n' follow.
	assert.Equal(t, "t", string(questions[2].Letter))
	assert.Empty(t, questions[2].Expected)
}

func TestPlay_Failed(t *testing.T) {
	// The first guess is 'a', absent from "dog"; one allowed miss ends it.
	store := vocab.New([]string{"dog", "cat", "bat"})
	g, err := Start(store, "dog", 1)
	require.NoError(t, err)

	renderer := &recordingRenderer{}
	result, err := Play(context.Background(), g, Options{Oracle: SecretOracle("dog"), Renderer: renderer})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeFailed, result.Outcome)
	assert.Equal(t, "___", result.Word)
	assert.Equal(t, 1, result.WrongGuesses)
	assert.Equal(t, MessageFailed, renderer.calls[len(renderer.calls)-1].message)
}

func TestPlay_ResponderError(t *testing.T) {
	store := vocab.New([]string{"cat", "car"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	boom := errors.New("input closed")
	_, err = Play(context.Background(), g, Options{
		Responder: ResponderFunc(func(Question) ([]int, error) { return nil, boom }),
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, model.OutcomeInProgress, g.Outcome())
}

// TestPlay_RejectsContradictingFeedback answers 'c' as absent although the
// secret starts with it. The game must stop instead of filtering the
// secret away.
func TestPlay_RejectsContradictingFeedback(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	result, err := Play(context.Background(), g, Options{
		Oracle:    SecretOracle("cat"),
		Responder: ResponderFunc(func(Question) ([]int, error) { return nil, nil }),
	})
	require.ErrorIs(t, err, ErrInvalidFeedback)

	assert.Equal(t, model.OutcomeInProgress, result.Outcome)
	assert.Equal(t, 0, result.Turns)
	assert.Equal(t, 0, result.WrongGuesses)
	assert.Equal(t, 4, result.Candidates, "the candidates are untouched")
}

// TestPlay_TrustedFeedbackIsNotChecked verifies that without an oracle the
// responder's answer is applied as given.
func TestPlay_TrustedFeedbackIsNotChecked(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := StartBlind(store, 3, 1)
	require.NoError(t, err)

	result, err := Play(context.Background(), g, Options{
		Responder: ResponderFunc(func(Question) ([]int, error) { return nil, nil }),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFailed, result.Outcome)
	assert.Equal(t, 1, result.WrongGuesses)
	assert.Equal(t, 0, result.Candidates)
}

// TestPlay_LogsLetterFrequency checks the debug entry written before each
// question.
func TestPlay_LogsLetterFrequency(t *testing.T) {
	store := vocab.New([]string{"cat", "car", "can", "cap"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	_, err = Play(context.Background(), g, Options{
		Oracle: SecretOracle("cat"),
		Logger: zap.New(core),
	})
	require.NoError(t, err)

	guesses := logs.FilterMessage("guess").AllUntimed()
	require.Len(t, guesses, 3)

	first := guesses[0].ContextMap()
	assert.Equal(t, "c", first["letter"])
	assert.Equal(t, int64(4), first["count"])
	assert.Equal(t, int64(6), first["distinctLetters"])
	assert.Equal(t, "c:4 a:4 t:1 r:1 n:1 p:1", first["frequency"])

	assert.Equal(t, 3, logs.FilterMessage("turn").Len())
}

func TestPlay_SelfPlayNeedsOracle(t *testing.T) {
	store := vocab.New([]string{"cat", "car"})
	g, err := StartBlind(store, 3, DefaultMaxWrongGuesses)
	require.NoError(t, err)

	_, err = Play(context.Background(), g, Options{})
	assert.ErrorIs(t, err, ErrNoOracle)
}

func TestPlay_Cancelled(t *testing.T) {
	store := vocab.New([]string{"cat", "car"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Play(ctx, g, Options{Oracle: SecretOracle("cat")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Turns)
}

// TestPlay_Exhausted uses a vocabulary with a duplicated word: the
// candidate set can never reach one element, so the solver runs out.
func TestPlay_Exhausted(t *testing.T) {
	store := vocab.New([]string{"cat", "cat"})
	g, err := Start(store, "cat", DefaultMaxWrongGuesses)
	require.NoError(t, err)

	result, err := Play(context.Background(), g, Options{Oracle: SecretOracle("cat")})
	require.Error(t, err)
	assert.Equal(t, "cat", result.Word)
	assert.Equal(t, model.OutcomeInProgress, result.Outcome)
}

// TestPlay_Terminates self-plays every embedded word and checks the turn
// bound: at most one turn per alphabet letter plus the allowed misses.
func TestPlay_Terminates(t *testing.T) {
	store := vocab.Default()
	for _, secret := range store.Words() {
		g, err := Start(store, secret, DefaultMaxWrongGuesses)
		require.NoError(t, err)

		result, err := Play(context.Background(), g, Options{Oracle: SecretOracle(secret)})
		require.NoError(t, err, secret)
		require.True(t, result.Outcome.IsTerminal(), secret)
		assert.LessOrEqual(t, result.Turns, 26+DefaultMaxWrongGuesses, secret)
		if result.Outcome == model.OutcomeSolved {
			assert.Equal(t, secret, result.Word)
		}
	}
}
