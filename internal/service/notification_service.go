package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"
	ws "vacationhub/internal/websocket"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	RequestID *string `json:"request_id"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

// NotificationService records per-user messages and pushes them to any open
// WebSocket connections. Notify is fire-and-forget: failures are logged and
// never propagated, so a broken notification store cannot fail a resolution.
type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, message string, requestID *uuid.UUID)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *ws.Hub
}

// NewNotificationService wires the repository and an optional hub (nil in tests).
func NewNotificationService(repo repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{repo: repo, hub: hub}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, message string, requestID *uuid.UUID) {
	n := &model.Notification{
		UserID:    userID,
		Message:   message,
		RequestID: requestID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification create failed for user %s: %v", userID, err)
		return
	}

	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":       "notification",
		"id":         n.ID.String(),
		"message":    n.Message,
		"request_id": requestID,
		"created_at": n.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	s.hub.SendToUser(userID, payload)
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]NotificationResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	notifications, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		item := NotificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.RequestID != nil {
			id := n.RequestID.String()
			item.RequestID = &id
		}
		res = append(res, item)
	}

	return res, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
