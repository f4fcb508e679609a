package ryver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"huddlebot/internal/core/domain"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pingInterval = 10 * time.Second
	authTimeout  = 15 * time.Second

	notifyTopic = "/api/notify"
)

// ChatHandler consumes live chat messages.
type ChatHandler interface {
	Handle(ctx context.Context, message *domain.Message)
}

// NotificationHandler consumes live platform notifications.
type NotificationHandler interface {
	Handle(ctx context.Context, notification *domain.Notification)
}

type wsFrame struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`

	// auth request
	Authorization string `json:"authorization,omitempty"`
	Agent         string `json:"agent,omitempty"`
	Resource      string `json:"resource,omitempty"`

	// chat message
	To   string `json:"to,omitempty"`
	From string `json:"from,omitempty"`
	Text string `json:"text,omitempty"`
	Key  string `json:"key,omitempty"`

	// event payload
	Data json.RawMessage `json:"data,omitempty"`
}

// Session is the live websocket connection delivering chat messages and
// notification events. Events are handled one at a time, in arrival order;
// a handler runs to completion before the next frame is read.
type Session struct {
	client        *Client
	conn          *websocket.Conn
	chatHandler   ChatHandler
	notifications NotificationHandler
}

// Dial connects and authenticates the live session. The returned session
// delivers nothing until Run is called.
func (c *Client) Dial(ctx context.Context, chatHandler ChatHandler, notifications NotificationHandler) (*Session, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial live session: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	s := &Session{
		client:        c,
		conn:          conn,
		chatHandler:   chatHandler,
		notifications: notifications,
	}

	if err := s.authenticate(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Info().Str("org", c.org).Msg("live session established")

	return s, nil
}

func (s *Session) authenticate() error {
	credentials := base64.StdEncoding.EncodeToString(
		[]byte(s.client.username + ":" + s.client.password))

	frame := wsFrame{
		ID:            frameID(),
		Type:          "auth",
		Authorization: "Basic " + credentials,
		Agent:         "huddlebot",
		Resource:      "huddlebot-" + frameID(),
	}

	if err := s.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("failed to send auth frame: %w", err)
	}

	s.conn.SetReadDeadline(time.Now().Add(authTimeout))
	defer s.conn.SetReadDeadline(time.Time{})

	for {
		var reply wsFrame
		if err := s.conn.ReadJSON(&reply); err != nil {
			return fmt.Errorf("failed to read auth reply: %w", err)
		}

		switch reply.Type {
		case "auth_ack":
			return nil
		case "auth_failed":
			return errors.New("live session authentication rejected")
		default:
			// presence and ack frames may arrive before the auth reply
		}
	}
}

// Run reads frames until the context is cancelled or the connection drops.
// Handlers are invoked inline, which is what serializes command handling.
func (s *Session) Run(ctx context.Context) error {
	pingCtx, stopPing := context.WithCancel(ctx)
	defer stopPing()
	go s.pingLoop(pingCtx)

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		var frame wsFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("live session closed: %w", err)
		}

		switch frame.Type {
		case "chat":
			s.handleChat(ctx, frame)
		case "event":
			if frame.Topic == notifyTopic {
				s.handleNotify(ctx, frame)
			}
		case "ack":
			// ping replies
		default:
			log.Trace().Str("type", frame.Type).Msg("ignoring live session frame")
		}
	}
}

func (s *Session) handleChat(ctx context.Context, frame wsFrame) {
	from, ok := s.client.UserByJID(frame.From)
	if !ok {
		log.Debug().Str("jid", frame.From).Msg("chat message from unknown sender")
	}

	s.chatHandler.Handle(ctx, &domain.Message{
		ID:      frame.Key,
		ChatJID: frame.To,
		From:    from,
		Text:    frame.Text,
	})
}

func (s *Session) handleNotify(ctx context.Context, frame wsFrame) {
	var data struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(frame.Data, &data); err != nil {
		log.Warn().Err(err).Msg("failed to decode notify event")
		return
	}

	notification, err := s.client.GetNotification(ctx, data.ID)
	if err != nil {
		log.Err(err).Int("notificationId", data.ID).Msg("failed to fetch notification for event")
		return
	}

	s.notifications.Handle(ctx, notification)
}

func (s *Session) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.conn.WriteJSON(wsFrame{ID: frameID(), Type: "ping"}); err != nil {
				log.Warn().Err(err).Msg("failed to send live session ping")
				return
			}
		}
	}
}

func (s *Session) Close() {
	deadline := time.Now().Add(time.Second)
	s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	s.conn.Close()
}

func frameID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}

	return id.String()
}
