package port

import (
	"context"
	"huddlebot/internal/core/domain"
	"time"
)

type TaskBoard interface {
	// CreateTask creates a task on the bot's task board with the given due
	// date.
	CreateTask(ctx context.Context, subject, body string, due time.Time) (*domain.Task, error)
	// CreateReminder registers a platform reminder on a task, due in the
	// given number of minutes, and returns the reminder ID.
	CreateReminder(ctx context.Context, taskID, minutes int) (int, error)
	// GetTask fetches a task by ID.
	GetTask(ctx context.Context, id int) (*domain.Task, error)
	// DeleteTask removes a task and with it the pending reminder.
	DeleteTask(ctx context.Context, id int) error
}

type NotificationFeed interface {
	// UnreadNotifications lists notifications that arrived while the bot was
	// offline, in the order the platform reports them.
	UnreadNotifications(ctx context.Context) ([]domain.Notification, error)
	// GetNotification fetches a single notification by ID.
	GetNotification(ctx context.Context, id int) (*domain.Notification, error)
	// MarkRead flags a notification as read and not new, consuming it.
	MarkRead(ctx context.Context, id int) error
}
