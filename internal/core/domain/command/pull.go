package command

import (
	"context"
	"errors"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pull updates the bot's working tree from origin so a following !restart
// picks up the new code.
type Pull struct {
	messenger port.Messenger
	repoPath  string
	prefix    string
	l         *zerolog.Logger
}

func NewPull(messenger port.Messenger, repoPath, prefix string) *Pull {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "pull").
		Logger()

	return &Pull{messenger: messenger, repoPath: repoPath, prefix: prefix, l: &logger}
}

func (p *Pull) GetPrefix() string {
	return p.prefix
}

func (p *Pull) Respond(ctx context.Context, message *domain.Message) error {
	p.l.Info().Str("username", message.From.Username).Msg("pulling latest changes")

	if err := p.pull(ctx); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			if _, serr := p.messenger.SendMessage(ctx, "Already up to date", ""); serr != nil {
				return fmt.Errorf("failed to send pull status: %w", serr)
			}
			return nil
		}

		if _, serr := p.messenger.SendMessage(ctx, genericFailureText, ""); serr != nil {
			p.l.Warn().Err(serr).Msg("failed to send failure notice")
		}
		return fmt.Errorf("pull failed: %w", err)
	}

	if _, err := p.messenger.SendMessage(ctx, "Pulled successfully", ""); err != nil {
		return fmt.Errorf("failed to send pull status: %w", err)
	}

	return nil
}

func (p *Pull) pull(ctx context.Context) error {
	repo, err := git.PlainOpen(p.repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	return worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
}
