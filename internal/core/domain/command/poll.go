package command

import (
	"context"
	"errors"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"huddlebot/internal/core/service"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	tooFewOptionsText  = "Please enter a question and at least two options to create a poll"
	tooManyOptionsText = "Your poll contained too many options, limit is %d options"
	pastDueText        = "Ending time entered is already in the past or too short"
	dueUsageText       = "Ending time entered is not valid. You can use any of these formats:\n" +
		"`t=hh:mm;`\n`d=mm/dd/yyyy hh:mm;`\n`m=<minutes>;`"
	genericFailureText = "Something went wrong."
)

type Poll struct {
	messenger port.Messenger
	scheduler service.Scheduler
	symbols   []string
	location  *time.Location
	prefix    string
	now       func() time.Time
	l         *zerolog.Logger
}

type PollParams struct {
	Messenger port.Messenger
	Scheduler service.Scheduler
	Symbols   []string
	Location  *time.Location
	Prefix    string
}

func NewPoll(p PollParams) *Poll {
	logger := log.With().
		Str("command", p.Prefix).
		Str("handler", "poll").
		Logger()

	return &Poll{
		messenger: p.Messenger,
		scheduler: p.Scheduler,
		symbols:   p.Symbols,
		location:  p.Location,
		prefix:    p.Prefix,
		now:       time.Now,
		l:         &logger,
	}
}

func (p *Poll) GetPrefix() string {
	return p.prefix
}

func (p *Poll) Respond(ctx context.Context, message *domain.Message) error {
	fields := SplitArgs(message.Text, p.prefix)
	if len(fields) == 0 {
		return p.reject(ctx, tooFewOptionsText)
	}

	now := p.now().In(p.location)

	// an optional leading time token selects the closing time; a malformed
	// token rejects the whole poll, it is not treated as a title
	var due *time.Time
	resolved, consumed, err := domain.ParseDueTime(fields[0], now)
	if err != nil {
		p.l.Debug().Err(err).Msg("rejecting poll with malformed due time")
		return p.reject(ctx, dueUsageText)
	}

	if consumed {
		fields = fields[1:]

		if domain.MinutesUntil(resolved, now) <= 0 {
			return p.reject(ctx, pastDueText)
		}

		due = &resolved
	}

	poll, err := domain.NewPoll(fields, p.symbols)
	switch {
	case errors.Is(err, domain.ErrTooFewOptions):
		return p.reject(ctx, tooFewOptionsText)
	case errors.Is(err, domain.ErrTooManyOptions):
		return p.reject(ctx, fmt.Sprintf(tooManyOptionsText, len(p.symbols)))
	case err != nil:
		return err
	}

	p.l.Info().Str("title", poll.Title).
		Str("username", message.From.Username).
		Msg("creating poll")

	pollID, err := p.messenger.SendMessage(ctx, poll.Render(due),
		fmt.Sprintf("This poll was created by %s.", message.From.Username))
	if err != nil {
		return p.fail(ctx, fmt.Errorf("failed to post poll: %w", err))
	}

	if _, _, err = p.messenger.WaitMessage(ctx, pollID); err != nil {
		return p.fail(ctx, fmt.Errorf("poll message %s never became visible: %w", pollID, err))
	}

	for _, symbol := range poll.Reactions {
		if err = p.messenger.React(ctx, pollID, symbol); err != nil {
			return p.fail(ctx, fmt.Errorf("failed to attach reaction %s: %w", symbol, err))
		}
	}

	if due == nil {
		return nil
	}

	_, err = p.scheduler.Schedule(ctx, domain.TaskSubjectPrefix+pollID, poll.EncodeBody(), *due)
	if err != nil {
		return p.fail(ctx, fmt.Errorf("failed to schedule poll closing: %w", err))
	}

	return nil
}

// reject reports an input problem back to the chat; the command itself is
// considered handled.
func (p *Poll) reject(ctx context.Context, text string) error {
	if _, err := p.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send rejection: %w", err)
	}

	return nil
}

// fail reports a generic failure to the requester and surfaces the cause to
// the caller for logging.
func (p *Poll) fail(ctx context.Context, err error) error {
	if _, serr := p.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
		p.l.Warn().Err(serr).Msg("failed to send failure notice")
	}

	return err
}
