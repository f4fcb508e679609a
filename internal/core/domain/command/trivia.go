package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const noTriviaText = "There is no trivia question to answer right now. Ask one with `!trivia`."

// TriviaRound is the state shared between !trivia, !response and !answer. It
// is owned by the command handlers, not a package global, and guarded for
// safety even though events arrive one at a time.
type TriviaRound struct {
	mutex   sync.Mutex
	current *domain.TriviaQuestion
}

func (r *TriviaRound) set(question *domain.TriviaQuestion) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.current = question
}

func (r *TriviaRound) peek() *domain.TriviaQuestion {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.current
}

func (r *TriviaRound) clear() {
	r.set(nil)
}

type Trivia struct {
	store     port.TriviaStore
	round     *TriviaRound
	messenger port.Messenger
	prefix    string
	l         *zerolog.Logger
}

func NewTrivia(store port.TriviaStore, round *TriviaRound, messenger port.Messenger, prefix string) *Trivia {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "trivia").
		Logger()

	return &Trivia{store: store, round: round, messenger: messenger, prefix: prefix, l: &logger}
}

func (t *Trivia) GetPrefix() string {
	return t.prefix
}

func (t *Trivia) Respond(ctx context.Context, message *domain.Message) error {
	question, err := t.store.Random(ctx)
	if err != nil {
		if _, serr := t.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
			t.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("failed to pick trivia question: %w", err)
	}

	t.l.Info().Int("questionId", question.ID).
		Str("username", message.From.Username).
		Msg("asking trivia question")

	t.round.set(question)

	text := fmt.Sprintf("++**Trivia time:**++\n%s\n\nAnswer with `!response <answer>` "+
		"or reveal the solution with `!answer`.", question.Question)

	if _, err = t.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send trivia question: %w", err)
	}

	return nil
}

// Response checks a submitted answer against the active trivia question.
type Response struct {
	round     *TriviaRound
	messenger port.Messenger
	prefix    string
}

func NewResponse(round *TriviaRound, messenger port.Messenger, prefix string) *Response {
	return &Response{round: round, messenger: messenger, prefix: prefix}
}

func (r *Response) GetPrefix() string {
	return r.prefix
}

func (r *Response) Respond(ctx context.Context, message *domain.Message) error {
	question := r.round.peek()
	if question == nil {
		if _, err := r.messenger.SendMessage(ctx, noTriviaText, ""); err != nil {
			return fmt.Errorf("failed to send notice: %w", err)
		}
		return nil
	}

	guess := Remainder(message.Text, r.prefix)

	var text string
	if strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(question.Answer)) {
		r.round.clear()
		text = fmt.Sprintf("Correct, @%s! The answer was **%s**.", message.From.Username, question.Answer)
	} else {
		text = fmt.Sprintf("Not it, @%s. Try again!", message.From.Username)
	}

	if _, err := r.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send response check: %w", err)
	}

	return nil
}

// Answer reveals and clears the active trivia question.
type Answer struct {
	round     *TriviaRound
	messenger port.Messenger
	prefix    string
}

func NewAnswer(round *TriviaRound, messenger port.Messenger, prefix string) *Answer {
	return &Answer{round: round, messenger: messenger, prefix: prefix}
}

func (a *Answer) GetPrefix() string {
	return a.prefix
}

func (a *Answer) Respond(ctx context.Context, _ *domain.Message) error {
	question := a.round.peek()
	if question == nil {
		if _, err := a.messenger.SendMessage(ctx, noTriviaText, ""); err != nil {
			return fmt.Errorf("failed to send notice: %w", err)
		}
		return nil
	}

	a.round.clear()

	if _, err := a.messenger.SendMessage(ctx,
		fmt.Sprintf("The answer was **%s**.", question.Answer), ""); err != nil {
		return fmt.Errorf("failed to send answer: %w", err)
	}

	return nil
}
