package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
)

const introText = "Hi! I'm huddlebot. I'm a fun, engagement-increasing bot made by the " +
	"open-source community. Ask me for a list of commands if you'd like by saying `!commands`."

type Intro struct {
	messenger port.Messenger
	prefix    string
}

func NewIntro(messenger port.Messenger, prefix string) *Intro {
	return &Intro{messenger: messenger, prefix: prefix}
}

func (i *Intro) GetPrefix() string {
	return i.prefix
}

func (i *Intro) Respond(ctx context.Context, _ *domain.Message) error {
	if _, err := i.messenger.SendMessage(ctx, introText, ""); err != nil {
		return fmt.Errorf("failed to send intro: %w", err)
	}

	return nil
}
