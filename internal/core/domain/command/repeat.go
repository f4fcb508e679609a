package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"
)

type Repeat struct {
	messenger port.Messenger
	prefix    string
}

func NewRepeat(messenger port.Messenger, prefix string) *Repeat {
	return &Repeat{messenger: messenger, prefix: prefix}
}

func (r *Repeat) GetPrefix() string {
	return r.prefix
}

func (r *Repeat) Respond(ctx context.Context, message *domain.Message) error {
	text := Remainder(message.Text, r.prefix)
	if text == "" {
		if _, err := r.messenger.SendMessage(ctx, "Please enter something to repeat", ""); err != nil {
			return fmt.Errorf("failed to send usage: %w", err)
		}
		return nil
	}

	// escape bangs so the echo can never trigger another command
	text = strings.ReplaceAll(text, "!", "\\!")

	_, err := r.messenger.SendMessage(ctx, text,
		fmt.Sprintf("This command was run by %s.", message.From.Username))
	if err != nil {
		return fmt.Errorf("failed to repeat message: %w", err)
	}

	return nil
}
