package port

import (
	"context"
	"huddlebot/internal/core/domain"
)

type TopicSource interface {
	// Topic returns the next conversation starter.
	Topic() string
}

type Translator interface {
	// Translate renders text in the target language (ISO 639-1 code).
	Translate(ctx context.Context, text, lang string) (string, error)
}

type Dictionary interface {
	// Define returns dictionary definitions for a word.
	Define(ctx context.Context, word string) ([]string, error)
	// Synonyms returns thesaurus entries for a word.
	Synonyms(ctx context.Context, word string) ([]string, error)
}

type TriviaStore interface {
	// Random picks a random question from the store.
	Random(ctx context.Context) (*domain.TriviaQuestion, error)
}

type DeckStore interface {
	// Deck loads the full card game deck.
	Deck(ctx context.Context) (*domain.Deck, error)
}
