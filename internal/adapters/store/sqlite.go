package store

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS trivia (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deck_prompts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deck_answers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL
);`

// SQLite backs the trivia questions and the card game decks with a single
// local database file.
type SQLite struct {
	db *sqlx.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store at %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create store schema: %w", err)
	}

	log.Info().Str("path", path).Msg("opened content store")

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Random picks one trivia question uniformly.
func (s *SQLite) Random(ctx context.Context) (*domain.TriviaQuestion, error) {
	var question domain.TriviaQuestion

	query := "SELECT id, question, answer FROM trivia ORDER BY RANDOM() LIMIT 1"
	if err := s.db.GetContext(ctx, &question, query); err != nil {
		return nil, fmt.Errorf("failed to pick trivia question: %w", err)
	}

	return &question, nil
}

// Deck loads the full card game deck.
func (s *SQLite) Deck(ctx context.Context) (*domain.Deck, error) {
	var prompts []string
	if err := s.db.SelectContext(ctx, &prompts, "SELECT text FROM deck_prompts"); err != nil {
		return nil, fmt.Errorf("failed to load deck prompts: %w", err)
	}

	var answers []string
	if err := s.db.SelectContext(ctx, &answers, "SELECT text FROM deck_answers"); err != nil {
		return nil, fmt.Errorf("failed to load deck answers: %w", err)
	}

	return &domain.Deck{Prompts: prompts, Answers: answers}, nil
}
