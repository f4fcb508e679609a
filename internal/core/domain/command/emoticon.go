package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"math/rand"
)

var emoticons = []string{
	"`( ͡❛ ͜ʖ ͡❛)`",
	"`O_o`",
	"`（　0ゝ0 )`",
	"`(╯°□°）╯︵ ┻━┻`",
	"`:-)`",
	"`<(o_o<)`",
	"`(/^▽^)/`",
	"`〠_〠`",
	"`(￢‿￢ )`",
	"`ᕕ( ᐛ )ᕗ`",
}

type Emoticon struct {
	messenger port.Messenger
	prefix    string
}

func NewEmoticon(messenger port.Messenger, prefix string) *Emoticon {
	return &Emoticon{messenger: messenger, prefix: prefix}
}

func (e *Emoticon) GetPrefix() string {
	return e.prefix
}

func (e *Emoticon) Respond(ctx context.Context, _ *domain.Message) error {
	if _, err := e.messenger.SendMessage(ctx, emoticons[rand.Intn(len(emoticons))], ""); err != nil {
		return fmt.Errorf("failed to send emoticon: %w", err)
	}

	return nil
}
