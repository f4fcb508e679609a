package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxCahRounds = 20

// Cah creates a new game: `!cah <rounds>`. The creator joins automatically;
// everyone else joins with !join before !start.
type Cah struct {
	decks     port.DeckStore
	session   *CahSession
	messenger port.Messenger
	prefix    string
	l         *zerolog.Logger
}

func NewCah(decks port.DeckStore, session *CahSession, messenger port.Messenger, prefix string) *Cah {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "cah").
		Logger()

	return &Cah{decks: decks, session: session, messenger: messenger, prefix: prefix, l: &logger}
}

func (c *Cah) GetPrefix() string {
	return c.prefix
}

func (c *Cah) Respond(ctx context.Context, message *domain.Message) error {
	rounds, err := strconv.Atoi(Remainder(message.Text, c.prefix))
	if err != nil || rounds < 1 || rounds > maxCahRounds {
		return sendNotice(ctx, c.messenger, errInvalidRounds.Error())
	}

	deck, err := c.decks.Deck(ctx)
	if err != nil {
		if serr := sendNotice(ctx, c.messenger, genericFailureText); serr != nil {
			c.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("failed to load deck: %w", err)
	}

	game := NewCahGame(rounds, deck, rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // game shuffle

	if err = c.session.begin(game); err != nil {
		return sendNotice(ctx, c.messenger, err.Error())
	}

	c.l.Info().Int("rounds", rounds).Str("username", message.From.Username).Msg("starting card game")

	if _, err = game.Join(message.From.Username); err != nil {
		return err
	}

	return sendNotice(ctx, c.messenger,
		fmt.Sprintf("@%s started a card game over %d rounds! Join with `!join`, then `!start`.",
			message.From.Username, rounds))
}

// gameCommand folds the shared shape of the in-game commands: resolve the
// running game, run one action against it, post the outcome.
type gameCommand struct {
	session   *CahSession
	messenger port.Messenger
	prefix    string
}

func (g *gameCommand) GetPrefix() string {
	return g.prefix
}

func (g *gameCommand) run(ctx context.Context, action func(game *CahGame) (string, error)) error {
	game, err := g.session.current()
	if err != nil {
		return sendNotice(ctx, g.messenger,
			"No game in progress. Start one with `!cah <rounds>`.")
	}

	text, err := action(game)
	if err != nil {
		return sendNotice(ctx, g.messenger, err.Error())
	}

	return sendNotice(ctx, g.messenger, text)
}

type Join struct{ gameCommand }

func NewJoin(session *CahSession, messenger port.Messenger, prefix string) *Join {
	return &Join{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (j *Join) Respond(ctx context.Context, message *domain.Message) error {
	return j.run(ctx, func(game *CahGame) (string, error) {
		return game.Join(message.From.Username)
	})
}

type Start struct{ gameCommand }

func NewStart(session *CahSession, messenger port.Messenger, prefix string) *Start {
	return &Start{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (s *Start) Respond(ctx context.Context, _ *domain.Message) error {
	return s.run(ctx, func(game *CahGame) (string, error) {
		return game.Start()
	})
}

type Card struct{ gameCommand }

func NewCard(session *CahSession, messenger port.Messenger, prefix string) *Card {
	return &Card{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (c *Card) Respond(ctx context.Context, message *domain.Message) error {
	n, err := strconv.Atoi(Remainder(message.Text, c.prefix))
	if err != nil {
		return sendNotice(ctx, c.messenger, "Play a card with `!card <n>`.")
	}

	return c.run(ctx, func(game *CahGame) (string, error) {
		return game.Play(message.From.Username, n)
	})
}

type Pick struct{ gameCommand }

func NewPick(session *CahSession, messenger port.Messenger, prefix string) *Pick {
	return &Pick{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (p *Pick) Respond(ctx context.Context, message *domain.Message) error {
	n, err := strconv.Atoi(Remainder(message.Text, p.prefix))
	if err != nil {
		return sendNotice(ctx, p.messenger, "Pick a winner with `!pick <n>`.")
	}

	return p.run(ctx, func(game *CahGame) (string, error) {
		return game.Pick(message.From.Username, n)
	})
}

type Scores struct{ gameCommand }

func NewScores(session *CahSession, messenger port.Messenger, prefix string) *Scores {
	return &Scores{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (s *Scores) Respond(ctx context.Context, _ *domain.Message) error {
	return s.run(ctx, func(game *CahGame) (string, error) {
		return game.Scores(), nil
	})
}

type End struct{ gameCommand }

func NewEnd(session *CahSession, messenger port.Messenger, prefix string) *End {
	return &End{gameCommand{session: session, messenger: messenger, prefix: prefix}}
}

func (e *End) Respond(ctx context.Context, message *domain.Message) error {
	game, err := e.session.end()
	if err != nil {
		return sendNotice(ctx, e.messenger, "No game in progress. Start one with `!cah <rounds>`.")
	}

	log.Info().Str("username", message.From.Username).Msg("card game ended early")

	return sendNotice(ctx, e.messenger, game.finalMessage())
}

func sendNotice(ctx context.Context, messenger port.Messenger, text string) error {
	if _, err := messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}

	return nil
}
