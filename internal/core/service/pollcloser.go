package service

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

// PollCloser runs the closing half of the poll lifecycle when a reminder
// fires: rebuild the poll from the task body, re-fetch the poll message,
// tally the reactions and post the results. The caller owns deleting the
// backing task and consuming the notification.
type PollCloser struct {
	messenger port.Messenger
	botID     int
}

func NewPollCloser(messenger port.Messenger, botID int) *PollCloser {
	return &PollCloser{messenger: messenger, botID: botID}
}

func (p *PollCloser) Close(ctx context.Context, task *domain.Task) error {
	poll, err := domain.ParsePollBody(task.Body)
	if err != nil {
		return fmt.Errorf("failed to parse poll task %d: %w", task.ID, err)
	}

	pollID := strings.TrimPrefix(task.Subject, domain.TaskSubjectPrefix)

	log.Info().Str("pollId", pollID).Str("title", poll.Title).Msg("poll has ended, retrieving results")

	_, reactions, err := p.messenger.WaitMessage(ctx, pollID)
	if err != nil {
		// nobody is waiting on this anymore, the failure is only logged
		return fmt.Errorf("failed to retrieve poll message %s: %w", pollID, err)
	}

	votes := poll.Tally(reactions, p.botID)

	_, err = p.messenger.SendMessage(ctx, poll.ResultsMessage(votes), "")
	if err != nil {
		return fmt.Errorf("failed to post poll results for %s: %w", pollID, err)
	}

	return nil
}
