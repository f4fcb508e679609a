package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
)

// TellMeTo is the "someone tell me to" autoresponse: the bot tells the
// requester to do the thing they asked to be told to do.
type TellMeTo struct {
	messenger port.Messenger
	prefix    string
}

func NewTellMeTo(messenger port.Messenger, prefix string) *TellMeTo {
	return &TellMeTo{messenger: messenger, prefix: prefix}
}

func (t *TellMeTo) GetPrefix() string {
	return t.prefix
}

func (t *TellMeTo) Respond(ctx context.Context, message *domain.Message) error {
	toDo := Remainder(message.Text, t.prefix)
	if toDo == "" {
		return nil
	}

	text := fmt.Sprintf("@%s: %s", message.From.Username, toDo)

	if _, err := t.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send autoresponse: %w", err)
	}

	return nil
}
