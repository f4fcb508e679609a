package command

import (
	"context"
	"huddlebot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTriviaStore struct {
	mock.Mock
}

func (m *MockTriviaStore) Random(ctx context.Context) (*domain.TriviaQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TriviaQuestion), args.Error(1)
}

func triviaSetup(t *testing.T) (*Trivia, *Response, *Answer, *MockMessenger) {
	t.Helper()

	messenger := &MockMessenger{}
	messenger.On("SendMessage", mock.Anything, mock.Anything, "").Return("1", nil)

	store := &MockTriviaStore{}
	store.On("Random", mock.Anything).
		Return(&domain.TriviaQuestion{ID: 1, Question: "Capital of France?", Answer: "Paris"}, nil)

	round := &TriviaRound{}

	return NewTrivia(store, round, messenger, "!trivia"),
		NewResponse(round, messenger, "!response"),
		NewAnswer(round, messenger, "!answer"),
		messenger
}

func triviaMessage(text string) *domain.Message {
	return &domain.Message{ID: "1", From: domain.User{Username: "bob"}, Text: text}
}

func TestTriviaAsksQuestion(t *testing.T) {
	trivia, _, _, messenger := triviaSetup(t)

	err := trivia.Respond(context.Background(), triviaMessage("!trivia"))

	require.NoError(t, err)
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent[0], "Capital of France?")
}

func TestResponseWithoutQuestion(t *testing.T) {
	_, response, _, messenger := triviaSetup(t)

	err := response.Respond(context.Background(), triviaMessage("!response Paris"))

	require.NoError(t, err)
	assert.Contains(t, messenger.sent[0], "no trivia question")
}

func TestResponseCorrectAnswerClearsRound(t *testing.T) {
	trivia, response, _, messenger := triviaSetup(t)

	require.NoError(t, trivia.Respond(context.Background(), triviaMessage("!trivia")))
	require.NoError(t, response.Respond(context.Background(), triviaMessage("!response  paris ")))

	assert.Contains(t, messenger.sent[1], "Correct, @bob!")

	// the round is consumed
	require.NoError(t, response.Respond(context.Background(), triviaMessage("!response Paris")))
	assert.Contains(t, messenger.sent[2], "no trivia question")
}

func TestResponseWrongAnswerKeepsRound(t *testing.T) {
	trivia, response, _, messenger := triviaSetup(t)

	require.NoError(t, trivia.Respond(context.Background(), triviaMessage("!trivia")))
	require.NoError(t, response.Respond(context.Background(), triviaMessage("!response London")))

	assert.Contains(t, messenger.sent[1], "Not it, @bob.")

	require.NoError(t, response.Respond(context.Background(), triviaMessage("!response Paris")))
	assert.Contains(t, messenger.sent[2], "Correct, @bob!")
}

func TestAnswerRevealsAndClears(t *testing.T) {
	trivia, response, answer, messenger := triviaSetup(t)

	require.NoError(t, trivia.Respond(context.Background(), triviaMessage("!trivia")))
	require.NoError(t, answer.Respond(context.Background(), triviaMessage("!answer")))

	assert.Contains(t, messenger.sent[1], "The answer was **Paris**.")

	require.NoError(t, response.Respond(context.Background(), triviaMessage("!response Paris")))
	assert.Contains(t, messenger.sent[2], "no trivia question")
}
