package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"sort"
	"strings"
)

type Commands struct {
	registry  port.CommandRegistry
	messenger port.Messenger
	prefix    string
}

func NewCommands(registry port.CommandRegistry, messenger port.Messenger, prefix string) *Commands {
	return &Commands{registry: registry, messenger: messenger, prefix: prefix}
}

func (c *Commands) GetPrefix() string {
	return c.prefix
}

func (c *Commands) Respond(ctx context.Context, _ *domain.Message) error {
	prefixes := c.registry.ListPrefixes()
	sort.Strings(prefixes)

	sb := &strings.Builder{}
	sb.WriteString("I understand these commands:\n")
	for _, prefix := range prefixes {
		fmt.Fprintf(sb, "- `%s`\n", prefix)
	}

	if _, err := c.messenger.SendMessage(ctx, sb.String(), ""); err != nil {
		return fmt.Errorf("failed to send command list: %w", err)
	}

	return nil
}
