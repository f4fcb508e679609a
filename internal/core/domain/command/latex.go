package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"net/url"
)

type Latex struct {
	messenger port.Messenger
	prefix    string
}

func NewLatex(messenger port.Messenger, prefix string) *Latex {
	return &Latex{messenger: messenger, prefix: prefix}
}

func (l *Latex) GetPrefix() string {
	return l.prefix
}

func (l *Latex) Respond(ctx context.Context, message *domain.Message) error {
	expr := Remainder(message.Text, l.prefix)
	if expr == "" {
		if _, err := l.messenger.SendMessage(ctx, "Please enter a LaTeX expression to render", ""); err != nil {
			return fmt.Errorf("failed to send usage: %w", err)
		}
		return nil
	}

	text := fmt.Sprintf("![LaTeX](http://tex.z-dn.net/?f=%s)", url.QueryEscape(expr))

	if _, err := l.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send rendered expression: %w", err)
	}

	return nil
}
