package port

import (
	"context"
	"huddlebot/internal/core/domain"
)

type Command interface {
	// Respond processes the triggering message and replies to the bot chat.
	Respond(ctx context.Context, message *domain.Message) error
	// GetPrefix retrieves the literal message prefix this handler answers to.
	GetPrefix() string
}

// Cooldown gates command invocations per identity. Permit reports whether the
// identity may run now and records the use; bypass always permits.
type Cooldown interface {
	Permit(identity string, bypass bool) bool
}

// Registration couples a command handler with its dispatch policy.
type Registration struct {
	Handler Command
	// AdminOnly commands are silently declined for non-admins.
	AdminOnly bool
	// Gate rate-limits the command; nil means no cooldown.
	Gate Cooldown
	// PerUser keys the cooldown by the invoking username instead of the
	// shared global identity.
	PerUser bool
	// Bypass makes the command skip its gate (admin-only bypass variants).
	Bypass bool
}

type CommandRegistry interface {
	// Register adds a command registration to the registry.
	Register(reg Registration)
	// Match selects the registration with the longest prefix matching the
	// lowercased message text.
	Match(text string) (*Registration, bool)
	// ListPrefixes returns all registered prefixes, longest first.
	ListPrefixes() []string
}
