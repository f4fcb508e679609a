package handler

import (
	"context"
	"errors"
	"huddlebot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) UnreadNotifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockFeed) GetNotification(ctx context.Context, id int) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockFeed) MarkRead(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCloser struct {
	mock.Mock
}

func (m *MockCloser) Close(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func pollReminder(id, taskID int) *domain.Notification {
	return &domain.Notification{
		ID:         id,
		Predicate:  domain.PredicateReminder,
		EntityType: domain.EntityTask,
		ObjectID:   taskID,
	}
}

func TestHandleDiscardsIrrelevantNotification(t *testing.T) {
	board := &MockTaskBoard{}
	feed := &MockFeed{}
	feed.On("MarkRead", mock.Anything, 3).Return(nil)

	n := NewNotification(board, feed, &MockCloser{})

	n.Handle(context.Background(), &domain.Notification{ID: 3, Predicate: "chat_mention"})

	feed.AssertCalled(t, "MarkRead", mock.Anything, 3)
	board.AssertNotCalled(t, "GetTask", mock.Anything, mock.Anything)
}

func TestHandleClosesPollAndConsumesReminder(t *testing.T) {
	task := &domain.Task{ID: 9, Subject: domain.TaskSubjectPrefix + "42", Body: "Lunch?;Yes;No;;zero;one"}

	board := &MockTaskBoard{}
	board.On("GetTask", mock.Anything, 9).Return(task, nil)
	board.On("DeleteTask", mock.Anything, 9).Return(nil)

	feed := &MockFeed{}
	feed.On("MarkRead", mock.Anything, 3).Return(nil)

	closer := &MockCloser{}
	closer.On("Close", mock.Anything, task).Return(nil)

	n := NewNotification(board, feed, closer)

	n.Handle(context.Background(), pollReminder(3, 9))

	closer.AssertCalled(t, "Close", mock.Anything, task)
	board.AssertCalled(t, "DeleteTask", mock.Anything, 9)
	feed.AssertCalled(t, "MarkRead", mock.Anything, 3)
}

func TestHandleDeletesTaskEvenWhenClosingFails(t *testing.T) {
	task := &domain.Task{ID: 9, Subject: domain.TaskSubjectPrefix + "42", Body: "garbage"}

	board := &MockTaskBoard{}
	board.On("GetTask", mock.Anything, 9).Return(task, nil)
	board.On("DeleteTask", mock.Anything, 9).Return(nil)

	feed := &MockFeed{}
	feed.On("MarkRead", mock.Anything, 3).Return(nil)

	closer := &MockCloser{}
	closer.On("Close", mock.Anything, task).Return(errors.New("malformed poll body"))

	n := NewNotification(board, feed, closer)

	n.Handle(context.Background(), pollReminder(3, 9))

	board.AssertCalled(t, "DeleteTask", mock.Anything, 9)
	feed.AssertCalled(t, "MarkRead", mock.Anything, 3)
}

func TestHandleLeavesNotificationUnreadWhenTaskFetchFails(t *testing.T) {
	board := &MockTaskBoard{}
	board.On("GetTask", mock.Anything, 9).Return(nil, errors.New("task board unavailable"))

	feed := &MockFeed{}
	n := NewNotification(board, feed, &MockCloser{})

	n.Handle(context.Background(), pollReminder(3, 9))

	feed.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	board.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestHandleDiscardsNonPollReminder(t *testing.T) {
	task := &domain.Task{ID: 9, Subject: "Water the plants"}

	board := &MockTaskBoard{}
	board.On("GetTask", mock.Anything, 9).Return(task, nil)

	feed := &MockFeed{}
	feed.On("MarkRead", mock.Anything, 3).Return(nil)

	closer := &MockCloser{}
	n := NewNotification(board, feed, closer)

	n.Handle(context.Background(), pollReminder(3, 9))

	closer.AssertNotCalled(t, "Close", mock.Anything, mock.Anything)
	board.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
	feed.AssertCalled(t, "MarkRead", mock.Anything, 3)
}

func TestReplayDrainsUnreadNotifications(t *testing.T) {
	board := &MockTaskBoard{}
	feed := &MockFeed{}
	feed.On("UnreadNotifications", mock.Anything).Return([]domain.Notification{
		{ID: 1, Predicate: "chat_mention"},
		{ID: 2, Predicate: "chat_mention"},
	}, nil)
	feed.On("MarkRead", mock.Anything, 1).Return(nil)
	feed.On("MarkRead", mock.Anything, 2).Return(nil)

	n := NewNotification(board, feed, &MockCloser{})

	err := n.Replay(context.Background())

	assert.NoError(t, err)
	feed.AssertCalled(t, "MarkRead", mock.Anything, 1)
	feed.AssertCalled(t, "MarkRead", mock.Anything, 2)
}

func TestReplayPropagatesFeedError(t *testing.T) {
	feed := &MockFeed{}
	feed.On("UnreadNotifications", mock.Anything).Return(nil, errors.New("feed unavailable"))

	n := NewNotification(&MockTaskBoard{}, feed, &MockCloser{})

	assert.Error(t, n.Replay(context.Background()))
}
