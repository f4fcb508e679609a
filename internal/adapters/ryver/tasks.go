package ryver

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const taskCategory = "HuddleBot:Polls"

// TaskBoard is the bot account's personal task board. Poll timers live here
// as tasks with platform reminders, so no timer survives inside the process.
type TaskBoard struct {
	client *Client
	id     int
}

// TaskBoard resolves the bot user's board, creating one when the account has
// none yet.
func (c *Client) TaskBoard(ctx context.Context) (*TaskBoard, error) {
	board, err := c.fetchBoard(ctx)
	if err != nil {
		return nil, err
	}

	if board == 0 {
		log.Info().Msg("bot user has no task board, creating one")

		payload := map[string]any{
			"boardType":  "board",
			"categories": []map[string]string{{"name": taskCategory}},
		}

		path := fmt.Sprintf("users(%d)/TaskBoard.Create()?$format=json", c.botUser.ID)
		if _, err := c.request(ctx, http.MethodPost, path, payload); err != nil {
			return nil, fmt.Errorf("failed to create task board: %w", err)
		}

		if board, err = c.fetchBoard(ctx); err != nil {
			return nil, err
		}
	}

	return &TaskBoard{client: c, id: board}, nil
}

func (c *Client) fetchBoard(ctx context.Context) (int, error) {
	path := fmt.Sprintf("users(%d)/board?$format=json", c.botUser.ID)

	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch task board: %w", err)
	}

	var board struct {
		ID int `json:"id"`
	}
	if err := unwrap(body, &board); err != nil {
		// accounts without a board answer with a null payload
		return 0, nil
	}

	return board.ID, nil
}

func (b *TaskBoard) CreateTask(ctx context.Context, subject, body string, due time.Time) (*domain.Task, error) {
	payload := createTaskRequest{
		Subject: subject,
		Body:    body,
		DueDate: due.Format(time.RFC3339),
		Board:   boardID{ID: b.id},
	}

	respBody, err := b.client.request(ctx, http.MethodPost, "tasks?$format=json", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	var dto taskDTO
	if err := unwrap(respBody, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode created task: %w", err)
	}

	log.Debug().Int("taskId", dto.ID).Str("subject", dto.Subject).Msg("created task")

	return &domain.Task{ID: dto.ID, Subject: dto.Subject, Body: dto.Body}, nil
}

func (b *TaskBoard) CreateReminder(ctx context.Context, taskID, minutes int) (int, error) {
	payload := createReminderRequest{When: fmt.Sprintf("+%d minutes", minutes)}
	path := fmt.Sprintf("tasks(%d)/UserNotification.Reminder.Create()?$format=json", taskID)

	body, err := b.client.request(ctx, http.MethodPost, path, payload)
	if err != nil {
		return 0, fmt.Errorf("failed to create reminder: %w", err)
	}

	var reminder struct {
		ID int `json:"id"`
	}
	if err := unwrap(body, &reminder); err != nil {
		// the endpoint sometimes answers with an empty non-JSON body even
		// though the reminder was registered
		log.Debug().Err(err).Int("taskId", taskID).Msg("reminder created without a decodable ID")
		return 0, nil
	}

	return reminder.ID, nil
}

func (b *TaskBoard) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	path := fmt.Sprintf("tasks(%d)?$format=json", id)

	body, err := b.client.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task %d: %w", id, err)
	}

	var dto taskDTO
	if err := unwrap(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode task %d: %w", id, err)
	}

	return &domain.Task{ID: dto.ID, Subject: dto.Subject, Body: dto.Body}, nil
}

func (b *TaskBoard) DeleteTask(ctx context.Context, id int) error {
	path := fmt.Sprintf("tasks(%d)", id)

	if _, err := b.client.request(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	return nil
}

// UnreadNotifications lists the notifications that piled up while the bot
// was offline, in the order the platform reports them.
func (c *Client) UnreadNotifications(ctx context.Context) ([]domain.Notification, error) {
	path := "userNotifications?$filter=((unread%20eq%20true))&$format=json"

	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}

	var dtos []notificationDTO
	if err := unwrapResults(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode unread notifications: %w", err)
	}

	notifications := make([]domain.Notification, len(dtos))
	for i, dto := range dtos {
		notifications[i] = toNotification(dto)
	}

	return notifications, nil
}

func (c *Client) GetNotification(ctx context.Context, id int) (*domain.Notification, error) {
	path := fmt.Sprintf("userNotifications(%d)?$format=json", id)

	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification %d: %w", id, err)
	}

	var dto notificationDTO
	if err := unwrap(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode notification %d: %w", id, err)
	}

	notification := toNotification(dto)

	return &notification, nil
}

// MarkRead flags a notification as neither unread nor new, consuming it.
// The platform offers no delete for notifications.
func (c *Client) MarkRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("userNotifications(%d)?$format=json", id)
	payload := notificationStatusRequest{Unread: false, New: false}

	if _, err := c.request(ctx, http.MethodPatch, path, payload); err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}

	return nil
}

func toNotification(dto notificationDTO) domain.Notification {
	return domain.Notification{
		ID:         dto.ID,
		Predicate:  dto.Predicate,
		EntityType: dto.ObjectType,
		ObjectID:   dto.ObjectID,
	}
}
