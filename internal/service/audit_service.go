package service

import (
	"context"
	"time"

	"vacationhub/internal/repository"
)

type AuditEntryResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	List(ctx context.Context, page, limit int) ([]AuditEntryResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, page, limit int) ([]AuditEntryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditEntryResponse, 0, len(logs))
	for _, entry := range logs {
		item := AuditEntryResponse{
			ID:         entry.ID.String(),
			Action:     entry.Action,
			EntityID:   entry.EntityID,
			EntityName: entry.EntityName,
			Details:    entry.Details,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.UserID != nil {
			item.UserID = entry.UserID.String()
		}
		if entry.User != nil {
			item.UserName = entry.User.Name
		}
		res = append(res, item)
	}

	return res, total, nil
}
