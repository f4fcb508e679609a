package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Translate struct {
	translator port.Translator
	messenger  port.Messenger
	prefix     string
	l          *zerolog.Logger
}

func NewTranslate(translator port.Translator, messenger port.Messenger, prefix string) *Translate {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "translate").
		Logger()

	return &Translate{translator: translator, messenger: messenger, prefix: prefix, l: &logger}
}

func (t *Translate) GetPrefix() string {
	return t.prefix
}

// Respond translates text into a target language: `!translate <lang> <text>`.
func (t *Translate) Respond(ctx context.Context, message *domain.Message) error {
	lang, text, found := strings.Cut(Remainder(message.Text, t.prefix), " ")
	text = strings.TrimSpace(text)
	if !found || text == "" {
		if _, err := t.messenger.SendMessage(ctx,
			"Please enter a language code and a text to translate, e.g. `!translate es hello`", ""); err != nil {
			return fmt.Errorf("failed to send usage: %w", err)
		}
		return nil
	}

	t.l.Info().Str("lang", lang).Str("username", message.From.Username).Msg("translating")

	translation, err := t.translator.Translate(ctx, text, lang)
	if err != nil {
		if _, serr := t.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
			t.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("translation failed: %w", err)
	}

	_, err = t.messenger.SendMessage(ctx,
		fmt.Sprintf("++**Translation result:**++\n%s", translation),
		fmt.Sprintf("This command was run by %s.", message.From.Username))
	if err != nil {
		return fmt.Errorf("failed to send translation: %w", err)
	}

	return nil
}
