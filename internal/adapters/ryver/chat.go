package ryver

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	botNotice = "I am a bot made by the community."

	// read-after-write lag window for freshly posted messages
	waitTimeout = 5 * time.Second
	waitDelay   = 500 * time.Millisecond
)

// Chat posts to and reads from a single Ryver chat. It implements
// port.Messenger for the configured bot chat.
type Chat struct {
	client      *Client
	entity      string
	id          int
	jid         string
	creatorName string
	avatar      string
}

// Chat binds a messenger to a cached chat by ID. creatorName and avatar form
// the bot signature attached to every outgoing message.
func (c *Client) Chat(id int, creatorName, avatar string) (*Chat, error) {
	ref, ok := c.chatsByID[id]
	if !ok {
		return nil, fmt.Errorf("chat %d not found in org %s", id, c.org)
	}

	return &Chat{
		client:      c,
		entity:      ref.entity,
		id:          id,
		jid:         ref.jid,
		creatorName: creatorName,
		avatar:      avatar,
	}, nil
}

func (c *Chat) JID() string {
	return c.jid
}

func (c *Chat) SendMessage(ctx context.Context, text, footer string) (string, error) {
	payload := postMessageRequest{
		Body: text + "\n\n" + formatFooter(footer),
		CreateSource: createSource{
			DisplayName: c.creatorName,
			Avatar:      c.avatar,
		},
	}

	path := fmt.Sprintf("%s(%d)/Chat.PostMessage()?$format=json", c.entity, c.id)

	body, err := c.client.request(ctx, http.MethodPost, path, payload)
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}

	var posted struct {
		ID string `json:"id"`
	}
	if err := unwrap(body, &posted); err != nil {
		return "", fmt.Errorf("failed to decode posted message: %w", err)
	}

	log.Debug().Str("messageId", posted.ID).Msg("posted chat message")

	return posted.ID, nil
}

func (c *Chat) GetMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	path := fmt.Sprintf("%s(%d)/Chat.History.Message(id='%s',format='json')", c.entity, c.id, id)

	body, err := c.client.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}

	var messages []messageDTO
	if err := unwrapResults(body, &messages); err != nil {
		return nil, nil, fmt.Errorf("failed to decode message %s: %w", id, err)
	}

	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("message %s not found", id)
	}

	dto := messages[0]
	from, _ := c.client.UserByID(dto.From.ID)

	message := &domain.Message{
		ID:      dto.ID,
		ChatJID: c.jid,
		From:    from,
		Text:    dto.Body,
	}

	reactions := domain.Reactions(dto.Reactions)
	if reactions == nil {
		reactions = domain.Reactions{}
	}

	return message, reactions, nil
}

// WaitMessage polls GetMessage until the message turns up or the retry
// window closes, whichever comes first.
func (c *Chat) WaitMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	deadline := time.Now().Add(waitTimeout)

	for {
		message, reactions, err := c.GetMessage(ctx, id)
		if err == nil {
			return message, reactions, nil
		}

		if time.Now().After(deadline) {
			return nil, nil, fmt.Errorf("message %s not available after %s: %w", id, waitTimeout, err)
		}

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(waitDelay):
		}
	}
}

func (c *Chat) React(ctx context.Context, messageID, symbol string) error {
	path := fmt.Sprintf("%s(%d)/Chat.React()?$format=json", c.entity, c.id)

	_, err := c.client.request(ctx, http.MethodPost, path, reactRequest{ID: messageID, Reaction: symbol})
	if err != nil {
		return fmt.Errorf("failed to react to message %s: %w", messageID, err)
	}

	return nil
}

// formatFooter renders the small-text bot notice the way Ryver markdown
// expects it: every space carries its own caret pair.
func formatFooter(end string) string {
	footer := strings.TrimSpace(botNotice + " " + end)
	footer = strings.ReplaceAll(footer, " ", "^ ^")

	return "^" + footer + "^"
}
