package port

import (
	"context"
	"huddlebot/internal/core/domain"
)

type Messenger interface {
	// SendMessage posts to the bot chat with the bot's creator signature and
	// returns the new message ID. footer is appended to the standard bot
	// notice when non-empty.
	SendMessage(ctx context.Context, text, footer string) (string, error)
	// GetMessage fetches a chat message by ID, including its reactions.
	GetMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error)
	// WaitMessage fetches a message that may not be visible yet, polling
	// within a bounded window to tolerate read-after-write lag.
	WaitMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error)
	// React attaches a reaction symbol to a message.
	React(ctx context.Context, messageID, symbol string) error
}
