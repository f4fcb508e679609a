package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
)

type Topic struct {
	source    port.TopicSource
	messenger port.Messenger
	prefix    string
}

func NewTopic(source port.TopicSource, messenger port.Messenger, prefix string) *Topic {
	return &Topic{source: source, messenger: messenger, prefix: prefix}
}

func (t *Topic) GetPrefix() string {
	return t.prefix
}

func (t *Topic) Respond(ctx context.Context, _ *domain.Message) error {
	text := fmt.Sprintf("++**Conversation starter:**++\n%s", t.source.Topic())

	if _, err := t.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send topic: %w", err)
	}

	return nil
}
