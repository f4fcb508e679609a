package handler

import (
	"context"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"huddlebot/internal/core/service"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// cooldownReaction marks a declined invocation on the triggering message
// instead of cluttering the chat with text.
const cooldownReaction = "timer_clock"

// Chat routes live chat messages into the command registry, enforcing the
// admin and cooldown policies before a handler runs. Handlers run to
// completion before the session delivers the next event.
type Chat struct {
	registry  port.CommandRegistry
	auth      service.Authorizer
	messenger port.Messenger
	chatJID   string
	timeout   time.Duration
}

func NewChat(registry port.CommandRegistry, auth service.Authorizer, messenger port.Messenger,
	chatJID string, timeout time.Duration) *Chat {
	return &Chat{
		registry:  registry,
		auth:      auth,
		messenger: messenger,
		chatJID:   chatJID,
		timeout:   timeout,
	}
}

func (c *Chat) Handle(ctx context.Context, message *domain.Message) {
	if message.ChatJID != c.chatJID {
		return
	}

	reg, ok := c.registry.Match(message.Text)
	if !ok {
		return
	}

	l := log.With().
		Str("prefix", reg.Handler.GetPrefix()).
		Str("username", message.From.Username).
		Str("messageId", message.ID).
		Logger()

	if reg.AdminOnly && !c.auth.IsAdmin(message.From.Username) {
		l.Warn().Msg("non-admin attempted a restricted command")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if reg.Gate != nil {
		identity := service.GlobalIdentity
		if reg.PerUser {
			identity = strings.ToLower(message.From.Username)
		}

		if !reg.Gate.Permit(identity, reg.Bypass) {
			l.Info().Msg("cancelled due to cooldown")
			c.markCooldown(ctx, message.ID)
			return
		}
	}

	l.Info().Msg("dispatching command")

	if err := reg.Handler.Respond(ctx, message); err != nil {
		l.Err(err).Msg("failed to respond to command")
	}
}

func (c *Chat) markCooldown(ctx context.Context, messageID string) {
	// the triggering message may not be fetchable yet, WaitMessage absorbs
	// the read-after-write lag
	if _, _, err := c.messenger.WaitMessage(ctx, messageID); err != nil {
		log.Warn().Err(err).Str("messageId", messageID).Msg("failed to fetch message for cooldown marker")
		return
	}

	if err := c.messenger.React(ctx, messageID, cooldownReaction); err != nil {
		log.Warn().Err(err).Str("messageId", messageID).Msg("failed to attach cooldown marker")
	}
}
