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

const maxDictionaryEntries = 5

type Define struct {
	dictionary port.Dictionary
	messenger  port.Messenger
	prefix     string
	l          *zerolog.Logger
}

func NewDefine(dictionary port.Dictionary, messenger port.Messenger, prefix string) *Define {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "define").
		Logger()

	return &Define{dictionary: dictionary, messenger: messenger, prefix: prefix, l: &logger}
}

func (d *Define) GetPrefix() string {
	return d.prefix
}

func (d *Define) Respond(ctx context.Context, message *domain.Message) error {
	word := Remainder(message.Text, d.prefix)
	if word == "" {
		if _, err := d.messenger.SendMessage(ctx, "Please enter a word to define", ""); err != nil {
			return fmt.Errorf("failed to send usage: %w", err)
		}
		return nil
	}

	d.l.Info().Str("word", word).Str("username", message.From.Username).Msg("looking up definitions")

	definitions, err := d.dictionary.Define(ctx, word)
	if err != nil {
		if _, serr := d.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
			d.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("definition lookup failed: %w", err)
	}

	text := formatEntries(fmt.Sprintf("++**Definitions of %s:**++", word),
		fmt.Sprintf("No definitions found for **%s**", word), definitions)

	if _, err = d.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send definitions: %w", err)
	}

	return nil
}

func formatEntries(heading, emptyText string, entries []string) string {
	if len(entries) == 0 {
		return emptyText
	}

	if len(entries) > maxDictionaryEntries {
		entries = entries[:maxDictionaryEntries]
	}

	sb := &strings.Builder{}
	sb.WriteString(heading)
	for _, entry := range entries {
		fmt.Fprintf(sb, "\n- %s", entry)
	}

	return sb.String()
}
