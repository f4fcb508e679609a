package ryver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"huddlebot/internal/core/domain"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// chatRef locates a cached chat: the odata entity collection it lives in and
// its messaging JID.
type chatRef struct {
	entity string
	jid    string
	name   string
}

// Client is a Ryver REST client over the organization's odata endpoints,
// authenticated with the bot account's basic-auth credentials. Login and
// LoadChats must run before any lookup.
type Client struct {
	baseURL    string
	wsURL      string
	org        string
	username   string
	password   string
	httpClient *http.Client

	botUser     domain.User
	botTimeZone string
	chatsByID   map[int]chatRef
	usersByID   map[int]domain.User
	usersByJID  map[string]domain.User
	usersByName map[string]domain.User
}

func NewClient(org, username, password string) *Client {
	return &Client{
		baseURL:     fmt.Sprintf("https://%s.ryver.com/api/1/odata.svc", org),
		wsURL:       fmt.Sprintf("wss://%s.ryver.com/ws/ratatoskr", org),
		org:         org,
		username:    username,
		password:    password,
		httpClient:  &http.Client{},
		chatsByID:   make(map[int]chatRef),
		usersByID:   make(map[int]domain.User),
		usersByJID:  make(map[string]domain.User),
		usersByName: make(map[string]domain.User),
	}
}

// Login verifies the credentials and resolves the bot's own account, whose ID
// is excluded from poll tallies and whose time zone resolves poll due times.
func (c *Client) Login(ctx context.Context) error {
	body, err := c.request(ctx, http.MethodGet, "Ryver.Info()?$format=json", nil)
	if err != nil {
		return fmt.Errorf("failed to fetch organization info: %w", err)
	}

	var info infoDTO
	if err := unwrap(body, &info); err != nil {
		return fmt.Errorf("failed to decode organization info: %w", err)
	}

	c.botUser = domain.User{ID: info.Me.ID, Username: info.Me.Username, JID: info.Me.JID}
	c.botTimeZone = info.Me.TimeZone

	log.Info().Str("org", c.org).Str("username", c.username).Msg("logged into Ryver org")

	return nil
}

// LoadChats fills the chat and user caches from the forums, workrooms and
// users collections. Lookups afterwards are local.
func (c *Client) LoadChats(ctx context.Context) error {
	for _, entity := range []string{"forums", "workrooms"} {
		body, err := c.request(ctx, http.MethodGet, entity+"?$format=json", nil)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", entity, err)
		}

		var chats []chatDTO
		if err := unwrapResults(body, &chats); err != nil {
			return fmt.Errorf("failed to decode %s: %w", entity, err)
		}

		for _, chat := range chats {
			c.chatsByID[chat.ID] = chatRef{entity: entity, jid: chat.JID, name: chat.Name}
		}
	}

	body, err := c.request(ctx, http.MethodGet, "users?$format=json", nil)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var users []userDTO
	if err := unwrapResults(body, &users); err != nil {
		return fmt.Errorf("failed to decode users: %w", err)
	}

	for _, u := range users {
		user := domain.User{ID: u.ID, Username: u.Username, JID: u.JID}
		c.chatsByID[u.ID] = chatRef{entity: "users", jid: u.JID, name: u.Username}
		c.usersByID[u.ID] = user
		c.usersByJID[u.JID] = user
		c.usersByName[u.Username] = user
	}

	log.Info().Int("chats", len(c.chatsByID)).Int("users", len(c.usersByID)).
		Msg("loaded org chats")

	return nil
}

func (c *Client) BotUser() domain.User {
	return c.botUser
}

func (c *Client) BotTimeZone() string {
	return c.botTimeZone
}

func (c *Client) UserByID(id int) (domain.User, bool) {
	user, ok := c.usersByID[id]
	return user, ok
}

func (c *Client) UserByJID(jid string) (domain.User, bool) {
	user, ok := c.usersByJID[jid]
	return user, ok
}

func (c *Client) UserByUsername(username string) (domain.User, bool) {
	user, ok := c.usersByName[username]
	return user, ok
}

// request performs an odata call and returns the raw response body. payload
// is JSON-encoded when non-nil. Non-2xx statuses are errors.
func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("error encoding request payload: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating %s request: %w", method, err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("ryver API returned status %d for %s %s", resp.StatusCode, method, path)
	}

	return body, nil
}

// unwrap decodes the "d" envelope into out.
func unwrap(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	return json.Unmarshal(env.D, out)
}

// unwrapResults decodes the "d.results" list envelope into out.
func unwrapResults(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	var res results
	if err := json.Unmarshal(env.D, &res); err != nil {
		return err
	}

	return json.Unmarshal(res.Results, out)
}
