package service

import (
	"context"
	"fmt"
	"huddlebot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type Scheduler interface {
	Schedule(ctx context.Context, subject, body string, due time.Time) (int, error)
}

// ReminderScheduler delegates timer durability to the platform task board: a
// task carries the serialized state, a reminder on it is the callback. The
// bot holds no in-process timer for scheduled work, so pending reminders
// survive restarts and come back through notification replay.
type ReminderScheduler struct {
	board port.TaskBoard
	now   func() time.Time
}

func NewReminderScheduler(board port.TaskBoard) *ReminderScheduler {
	return &ReminderScheduler{board: board, now: time.Now}
}

// Schedule creates the backing task and registers a reminder against it,
// returning the reminder ID.
func (s *ReminderScheduler) Schedule(ctx context.Context, subject, body string, due time.Time) (int, error) {
	task, err := s.board.CreateTask(ctx, subject, body, due)
	if err != nil {
		return 0, fmt.Errorf("failed to create reminder task: %w", err)
	}

	log.Debug().Int("taskId", task.ID).Str("subject", subject).Msg("created reminder task")

	minutes := int(due.Sub(s.now()).Minutes())
	reminderID, err := s.board.CreateReminder(ctx, task.ID, minutes)
	if err != nil {
		return 0, fmt.Errorf("failed to create reminder on task %d: %w", task.ID, err)
	}

	log.Debug().Int("taskId", task.ID).Int("reminderId", reminderID).
		Int("minutes", minutes).Msg("reminder scheduled")

	return reminderID, nil
}
