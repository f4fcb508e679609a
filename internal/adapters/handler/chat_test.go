package handler

import (
	"context"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/domain/command"
	"huddlebot/internal/core/port"
	"huddlebot/internal/core/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(ctx context.Context, text, footer string) (string, error) {
	args := m.Called(ctx, text, footer)
	return args.String(0), args.Error(1)
}

func (m *MockMessenger) GetMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Message), args.Get(1).(domain.Reactions), args.Error(2)
}

func (m *MockMessenger) WaitMessage(ctx context.Context, id string) (*domain.Message, domain.Reactions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Message), args.Get(1).(domain.Reactions), args.Error(2)
}

func (m *MockMessenger) React(ctx context.Context, messageID, symbol string) error {
	args := m.Called(ctx, messageID, symbol)
	return args.Error(0)
}

type CountingResponder struct {
	prefix string
	calls  int
}

func (c *CountingResponder) Respond(_ context.Context, _ *domain.Message) error {
	c.calls++
	return nil
}

func (c *CountingResponder) GetPrefix() string {
	return c.prefix
}

const testChatJID = "chat@example"

func chatMessage(text string) *domain.Message {
	return &domain.Message{
		ID:      "17",
		ChatJID: testChatJID,
		From:    domain.User{ID: 1, Username: "bob"},
		Text:    text,
	}
}

func newChat(registry port.CommandRegistry, messenger port.Messenger) *Chat {
	return NewChat(registry, service.NewAdminList([]string{"admin"}), messenger,
		testChatJID, time.Minute)
}

func TestHandleIgnoresOtherChats(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!topic"}
	registry.Register(port.Registration{Handler: responder})

	c := newChat(registry, &MockMessenger{})

	message := chatMessage("!topic")
	message.ChatJID = "other@example"
	c.Handle(context.Background(), message)

	assert.Zero(t, responder.calls)
}

func TestHandleIgnoresUnknownText(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!topic"}
	registry.Register(port.Registration{Handler: responder})

	c := newChat(registry, &MockMessenger{})

	c.Handle(context.Background(), chatMessage("hello there"))

	assert.Zero(t, responder.calls)
}

func TestHandleDispatchesCommand(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!topic"}
	registry.Register(port.Registration{Handler: responder})

	c := newChat(registry, &MockMessenger{})

	c.Handle(context.Background(), chatMessage("!topic"))

	assert.Equal(t, 1, responder.calls)
}

func TestHandleSilentlyDeclinesNonAdmin(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!shutdown"}
	registry.Register(port.Registration{Handler: responder, AdminOnly: true})

	messenger := &MockMessenger{}
	c := newChat(registry, messenger)

	c.Handle(context.Background(), chatMessage("!shutdown"))

	assert.Zero(t, responder.calls)
	messenger.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCooldownMarksTriggeringMessage(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!topic"}
	registry.Register(port.Registration{
		Handler: responder,
		Gate:    service.NewCooldown(time.Hour),
	})

	messenger := &MockMessenger{}
	messenger.On("WaitMessage", mock.Anything, "17").
		Return(&domain.Message{ID: "17"}, domain.Reactions{}, nil)
	messenger.On("React", mock.Anything, "17", cooldownReaction).Return(nil)

	c := newChat(registry, messenger)

	c.Handle(context.Background(), chatMessage("!topic"))
	c.Handle(context.Background(), chatMessage("!topic"))

	assert.Equal(t, 1, responder.calls)
	messenger.AssertCalled(t, "React", mock.Anything, "17", cooldownReaction)
}

func TestHandlePerUserCooldownsAreIndependent(t *testing.T) {
	registry := &command.Registry{}
	responder := &CountingResponder{prefix: "!repeat"}
	registry.Register(port.Registration{
		Handler: responder,
		Gate:    service.NewCooldown(time.Hour),
		PerUser: true,
	})

	c := newChat(registry, &MockMessenger{})

	c.Handle(context.Background(), chatMessage("!repeat hi"))

	other := chatMessage("!repeat hi")
	other.From.Username = "alice"
	c.Handle(context.Background(), other)

	assert.Equal(t, 2, responder.calls)
}

func TestHandleBypassVariantSkipsCooldown(t *testing.T) {
	registry := &command.Registry{}
	gate := service.NewCooldown(time.Hour)
	plain := &CountingResponder{prefix: "!topic"}
	bypass := &CountingResponder{prefix: "!topic bypass"}
	registry.Register(port.Registration{Handler: plain, Gate: gate})
	registry.Register(port.Registration{Handler: bypass, Gate: gate, AdminOnly: true, Bypass: true})

	c := NewChat(registry, service.NewAdminList([]string{"bob"}), &MockMessenger{},
		testChatJID, time.Minute)

	c.Handle(context.Background(), chatMessage("!topic"))
	c.Handle(context.Background(), chatMessage("!topic bypass"))
	c.Handle(context.Background(), chatMessage("!topic bypass"))

	assert.Equal(t, 1, plain.calls)
	assert.Equal(t, 2, bypass.calls)
}
