package command

import (
	"context"
	"errors"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
)

type Phon struct {
	messenger port.Messenger
	prefix    string
}

func NewPhon(messenger port.Messenger, prefix string) *Phon {
	return &Phon{messenger: messenger, prefix: prefix}
}

func (p *Phon) GetPrefix() string {
	return p.prefix
}

func (p *Phon) Respond(ctx context.Context, message *domain.Message) error {
	spelling, err := domain.PhoneticSpelling(Remainder(message.Text, p.prefix))

	var text string
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		text = "Please enter a word or phrase to be converted"
	case errors.Is(err, domain.ErrUnsupportedText):
		text = "Your text contained one or more unsupported characters"
	case err != nil:
		return err
	default:
		text = fmt.Sprintf("++**Phonetic characters:**++\n%s", spelling)
	}

	if _, err := p.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send phonetic spelling: %w", err)
	}

	return nil
}
