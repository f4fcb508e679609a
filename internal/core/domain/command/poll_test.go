package command

import (
	"context"
	"errors"
	"huddlebot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessenger struct {
	mock.Mock
	sent      []string
	footers   []string
	reactions []string
}

func (m *MockMessenger) SendMessage(ctx context.Context, text, footer string) (string, error) {
	args := m.Called(ctx, text, footer)
	m.sent = append(m.sent, text)
	m.footers = append(m.footers, footer)
	return args.String(0), args.Error(1)
}

func (m *MockMessenger) GetMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Message), args.Get(1).(domain.Reactions), args.Error(2)
}

func (m *MockMessenger) WaitMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Message), args.Get(1).(domain.Reactions), args.Error(2)
}

func (m *MockMessenger) React(ctx context.Context, messageID, symbol string) error {
	args := m.Called(ctx, messageID, symbol)
	m.reactions = append(m.reactions, symbol)
	return args.Error(0)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(ctx context.Context, subject, body string, due time.Time) (int, error) {
	args := m.Called(ctx, subject, body, due)
	return args.Int(0), args.Error(1)
}

func newPollCommand(messenger *MockMessenger, scheduler *MockScheduler, now time.Time) *Poll {
	p := NewPoll(PollParams{
		Messenger: messenger,
		Scheduler: scheduler,
		Symbols:   []string{"zero", "one", "two"},
		Location:  now.Location(),
		Prefix:    "!poll",
	})
	p.now = func() time.Time { return now }

	return p
}

func pollMessage(text string) *domain.Message {
	return &domain.Message{ID: "1", From: domain.User{Username: "bob"}, Text: text}
}

func TestPollOnlyTitleRejected(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, tooFewOptionsText, "").Return("2", nil)

	p := newPollCommand(messenger, scheduler, time.Now())

	err := p.Respond(context.Background(), pollMessage("!poll;OnlyTitle"))

	require.NoError(t, err)
	messenger.AssertExpectations(t)
	scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPollTooManyOptionsRejectedBeforePosting(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything,
		"Your poll contained too many options, limit is 3 options", "").Return("2", nil)

	p := newPollCommand(messenger, scheduler, time.Now())

	err := p.Respond(context.Background(), pollMessage("!poll Lunch?;a;b;c;d"))

	require.NoError(t, err)
	messenger.AssertExpectations(t)
	assert.Empty(t, messenger.reactions)
}

func TestPollMalformedDueTimeRejected(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, dueUsageText, "").Return("2", nil)

	p := newPollCommand(messenger, scheduler, time.Now())

	err := p.Respond(context.Background(), pollMessage("!poll t=9am;Lunch?;a;b"))

	require.NoError(t, err)
	messenger.AssertExpectations(t)
}

func TestPollDueTimeInPastRejected(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, pastDueText, "").Return("2", nil)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	p := newPollCommand(messenger, scheduler, now)

	err := p.Respond(context.Background(), pollMessage("!poll m=0;Lunch?;a;b"))

	require.NoError(t, err)
	messenger.AssertExpectations(t)
}

func TestPollWithoutDueTimePostsAndReacts(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, mock.Anything, "This poll was created by bob.").
		Return("55", nil)
	messenger.On("WaitMessage", mock.Anything, "55").
		Return(&domain.Message{ID: "55"}, domain.Reactions{}, nil)
	messenger.On("React", mock.Anything, "55", mock.Anything).Return(nil)

	p := newPollCommand(messenger, scheduler, time.Now())

	err := p.Respond(context.Background(), pollMessage("!poll Favorite color?;Red;Blue"))

	require.NoError(t, err)
	assert.Equal(t, []string{"zero", "one"}, messenger.reactions)
	assert.Contains(t, messenger.sent[0], "# Favorite color?")
	assert.NotContains(t, messenger.sent[0], "Poll will end on")
	scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPollWithDueTimeSchedulesReminder(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, mock.Anything, "This poll was created by bob.").
		Return("55", nil)
	messenger.On("WaitMessage", mock.Anything, "55").
		Return(&domain.Message{ID: "55"}, domain.Reactions{}, nil)
	messenger.On("React", mock.Anything, "55", mock.Anything).Return(nil)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	wantDue := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	scheduler.On("Schedule", mock.Anything, "HuddlePoll#55",
		"Favorite color?;Red;Blue;;zero;one", wantDue).Return(42, nil)

	p := newPollCommand(messenger, scheduler, now)

	err := p.Respond(context.Background(), pollMessage("!poll t=23:59;Favorite color?;Red;Blue"))

	require.NoError(t, err)
	assert.Equal(t, []string{"zero", "one"}, messenger.reactions)
	assert.Contains(t, messenger.sent[0], "Poll will end on 2026-03-10 at 23:59:00")
	scheduler.AssertExpectations(t)
}

func TestPollSchedulingFailureReported(t *testing.T) {
	messenger := &MockMessenger{}
	scheduler := &MockScheduler{}
	messenger.On("SendMessage", mock.Anything, mock.Anything, "This poll was created by bob.").
		Return("55", nil)
	messenger.On("WaitMessage", mock.Anything, "55").
		Return(&domain.Message{ID: "55"}, domain.Reactions{}, nil)
	messenger.On("React", mock.Anything, "55", mock.Anything).Return(nil)
	messenger.On("SendMessage", mock.Anything, genericFailureText, "").Return("56", nil)
	scheduler.On("Schedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, errors.New("api error"))

	p := newPollCommand(messenger, scheduler, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	err := p.Respond(context.Background(), pollMessage("!poll m=30;Favorite color?;Red;Blue"))

	require.ErrorContains(t, err, "failed to schedule poll closing")
	assert.Contains(t, messenger.sent, genericFailureText)
}
