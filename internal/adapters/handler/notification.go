package handler

import (
	"context"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type pollCloser interface {
	Close(ctx context.Context, task *domain.Task) error
}

// Notification consumes platform notifications: task reminders carrying a
// poll are closed, everything else is discarded. The same path serves both
// startup replay of unread notifications and live delivery, which is what
// makes pending reminders survive restarts.
type Notification struct {
	board  port.TaskBoard
	feed   port.NotificationFeed
	closer pollCloser
}

func NewNotification(board port.TaskBoard, feed port.NotificationFeed, closer pollCloser) *Notification {
	return &Notification{board: board, feed: feed, closer: closer}
}

func (n *Notification) Handle(ctx context.Context, notif *domain.Notification) {
	l := log.With().
		Int("notificationId", notif.ID).
		Str("predicate", notif.Predicate).
		Logger()

	if notif.Predicate != domain.PredicateReminder || notif.EntityType != domain.EntityTask {
		l.Debug().Msg("discarding irrelevant notification")
		n.markRead(ctx, notif.ID)
		return
	}

	task, err := n.board.GetTask(ctx, notif.ObjectID)
	if err != nil {
		// left unread so the next startup replay retries the fetch
		l.Err(err).Int("taskId", notif.ObjectID).Msg("failed to fetch reminder task")
		return
	}

	if !strings.HasPrefix(task.Subject, domain.TaskSubjectPrefix) {
		l.Debug().Str("subject", task.Subject).Msg("reminder is not a poll, discarding")
		n.markRead(ctx, notif.ID)
		return
	}

	l.Info().Str("subject", task.Subject).Msg("poll reminder received")

	if err = n.closer.Close(ctx, task); err != nil {
		l.Err(err).Msg("failed to close poll")
	}

	// the task is deleted even when closing failed: a malformed body or a
	// vanished poll message would otherwise re-trigger on every replay
	if err = n.board.DeleteTask(ctx, task.ID); err != nil {
		l.Warn().Err(err).Int("taskId", task.ID).Msg("failed to delete poll task")
	}

	n.markRead(ctx, notif.ID)
}

// Replay drains unread notifications through the live handling path. It must
// finish before the live session starts delivering events.
func (n *Notification) Replay(ctx context.Context) error {
	notifications, err := n.feed.UnreadNotifications(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("count", len(notifications)).Msg("replaying unread notifications")

	for i := range notifications {
		n.Handle(ctx, &notifications[i])
	}

	return nil
}

func (n *Notification) markRead(ctx context.Context, id int) {
	if err := n.feed.MarkRead(ctx, id); err != nil {
		log.Warn().Err(err).Int("notificationId", id).Msg("failed to mark notification read")
	}
}
