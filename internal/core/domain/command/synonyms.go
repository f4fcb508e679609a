package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Synonyms struct {
	dictionary port.Dictionary
	messenger  port.Messenger
	prefix     string
	l          *zerolog.Logger
}

func NewSynonyms(dictionary port.Dictionary, messenger port.Messenger, prefix string) *Synonyms {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "synonyms").
		Logger()

	return &Synonyms{dictionary: dictionary, messenger: messenger, prefix: prefix, l: &logger}
}

func (s *Synonyms) GetPrefix() string {
	return s.prefix
}

func (s *Synonyms) Respond(ctx context.Context, message *domain.Message) error {
	word := Remainder(message.Text, s.prefix)
	if word == "" {
		if _, err := s.messenger.SendMessage(ctx, "Please enter a word to look up synonyms for", ""); err != nil {
			return fmt.Errorf("failed to send usage: %w", err)
		}
		return nil
	}

	s.l.Info().Str("word", word).Str("username", message.From.Username).Msg("looking up synonyms")

	synonyms, err := s.dictionary.Synonyms(ctx, word)
	if err != nil {
		if _, serr := s.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
			s.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("synonym lookup failed: %w", err)
	}

	text := formatEntries(fmt.Sprintf("++**Synonyms of %s:**++", word),
		fmt.Sprintf("No synonyms found for **%s**", word), synonyms)

	if _, err = s.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send synonyms: %w", err)
	}

	return nil
}
