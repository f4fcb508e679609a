package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Restart re-executes the bot binary and shuts the current process down.
type Restart struct {
	stop   func()
	prefix string
}

func NewRestart(stop func(), prefix string) *Restart {
	return &Restart{stop: stop, prefix: prefix}
}

func (r *Restart) GetPrefix() string {
	return r.prefix
}

func (r *Restart) Respond(_ context.Context, message *domain.Message) error {
	log.Warn().Str("username", message.From.Username).Msg("restarting bot")

	cmd := exec.Command(os.Args[0], os.Args[1:]...) //nolint:gosec // restarting ourselves
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start replacement process: %w", err)
	}

	r.stop()

	return nil
}

// Shutdown stops the bot by closing the live session.
type Shutdown struct {
	stop   func()
	prefix string
}

func NewShutdown(stop func(), prefix string) *Shutdown {
	return &Shutdown{stop: stop, prefix: prefix}
}

func (s *Shutdown) GetPrefix() string {
	return s.prefix
}

func (s *Shutdown) Respond(_ context.Context, message *domain.Message) error {
	log.Warn().Str("username", message.From.Username).Msg("shutting down bot")

	s.stop()

	return nil
}
