package service

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

type MockTaskBoard struct {
	mock.Mock
}

func (m *MockTaskBoard) CreateTask(ctx context.Context, subject, body string, due time.Time) (*domain.Task, error) {
	args := m.Called(ctx, subject, body, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskBoard) CreateReminder(ctx context.Context, taskID, minutes int) (int, error) {
	args := m.Called(ctx, taskID, minutes)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskBoard) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskBoard) DeleteTask(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSchedule(t *testing.T) {
	board := &MockTaskBoard{}
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	due := now.Add(30 * time.Minute)

	board.On("CreateTask", mock.Anything, "HuddlePoll#123", "body", due).
		Return(&domain.Task{ID: 7, Subject: "HuddlePoll#123", Body: "body"}, nil)
	board.On("CreateReminder", mock.Anything, 7, 30).Return(42, nil)

	s := NewReminderScheduler(board)
	s.now = func() time.Time { return now }

	reminderID, err := s.Schedule(context.Background(), "HuddlePoll#123", "body", due)

	require.NoError(t, err)
	assert.Equal(t, 42, reminderID)
	board.AssertExpectations(t)
}

func TestScheduleTaskCreationFails(t *testing.T) {
	board := &MockTaskBoard{}
	board.On("CreateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("api error"))

	s := NewReminderScheduler(board)

	_, err := s.Schedule(context.Background(), "subject", "body", time.Now().Add(time.Hour))

	require.ErrorContains(t, err, "failed to create reminder task")
	board.AssertNotCalled(t, "CreateReminder", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleReminderCreationFails(t *testing.T) {
	board := &MockTaskBoard{}
	board.On("CreateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Task{ID: 7}, nil)
	board.On("CreateReminder", mock.Anything, 7, mock.Anything).
		Return(0, errors.New("api error"))

	s := NewReminderScheduler(board)

	_, err := s.Schedule(context.Background(), "subject", "body", time.Now().Add(time.Hour))

	require.ErrorContains(t, err, "failed to create reminder on task 7")
}
