package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"
	"vacationhub/pkg/workdays"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type SubmitRequestDTO struct {
	VacationTypeID string `json:"vacation_type_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	Notes          string `json:"notes"`
}

type ResolveRequestDTO struct {
	Resolution string `json:"resolution" binding:"required,oneof=approved rejected"`
	AdminNote  string `json:"admin_note"`
}

type RequestResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name,omitempty"`
	TypeID       string  `json:"vacation_type_id"`
	TypeName     string  `json:"type_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Notes        string  `json:"notes"`
	Status       string  `json:"status"`
	AdminNote    string  `json:"admin_note"`
	ResolvedBy   *string `json:"resolved_by"`
	ResolverName string  `json:"resolver_name,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListRequestsFilter struct {
	Status string
	Year   int
	Page   int
	Limit  int
}

// --- Interface ---

// VacationService drives the request lifecycle: pending at submission, then
// exactly one of approved or rejected through Resolve. The status write is
// made durable before the notification is attempted; a failed notification
// is logged and swallowed.
type VacationService interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequestDTO) (RequestResponse, error)
	Resolve(ctx context.Context, requestID uuid.UUID, resolverID uuid.UUID, req ResolveRequestDTO) (RequestResponse, error)
	Delete(ctx context.Context, requestID uuid.UUID, callerID uuid.UUID) error
	Get(ctx context.Context, requestID uuid.UUID, callerID uuid.UUID) (RequestResponse, error)
	ListOwn(ctx context.Context, userID uuid.UUID, filter ListRequestsFilter) ([]RequestResponse, int64, error)
	// ListVisible returns the caller's team requests for managers and every
	// request for admins.
	ListVisible(ctx context.Context, callerID uuid.UUID, filter ListRequestsFilter) ([]RequestResponse, int64, error)
}

type vacationService struct {
	requests      repository.VacationRepository
	users         repository.UserRepository
	types         repository.VacationTypeRepository
	audit         repository.AuditRepository
	txManager     repository.TransactionManager
	notifications NotificationService
}

func NewVacationService(
	requests repository.VacationRepository,
	users repository.UserRepository,
	types repository.VacationTypeRepository,
	audit repository.AuditRepository,
	txManager repository.TransactionManager,
	notifications NotificationService,
) VacationService {
	return &vacationService{
		requests:      requests,
		users:         users,
		types:         types,
		audit:         audit,
		txManager:     txManager,
		notifications: notifications,
	}
}

// --- Implementation ---

func (s *vacationService) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequestDTO) (RequestResponse, error) {
	typeID, err := uuid.Parse(req.VacationTypeID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid vacation type id", ErrValidation)
	}

	start, err := workdays.ParseDate(req.StartDate)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, req.StartDate)
	}
	end, err := workdays.ParseDate(req.EndDate)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, req.EndDate)
	}
	if end.Before(start) {
		return RequestResponse{}, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}

	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: unknown vacation type", ErrValidation)
		}
		return RequestResponse{}, fmt.Errorf("failed to check vacation type: %w", err)
	}

	request := model.VacationRequest{
		UserID:         userID,
		VacationTypeID: typeID,
		StartDate:      start,
		EndDate:        end,
		Days:           workdays.Chargeable(start, end, true),
		Notes:          req.Notes,
		Status:         model.StatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requests.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create request: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
			"days":       request.Days,
		})
		audit := model.AuditLog{
			UserID:     &userID,
			Action:     model.ActionSubmitRequest,
			EntityID:   request.ID.String(),
			EntityName: model.StatusPending,
			Details:    string(details),
		}
		if auditErr := s.audit.Log(txCtx, &audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return RequestResponse{}, err
	}

	// Best-effort confirmation; the request stands even if this fails.
	s.notifications.Notify(ctx, userID,
		fmt.Sprintf("Your vacation request for %s to %s was submitted and is pending approval.", req.StartDate, req.EndDate),
		&request.ID)

	return s.reload(ctx, request.ID)
}

func (s *vacationService) Resolve(ctx context.Context, requestID uuid.UUID, resolverID uuid.UUID, req ResolveRequestDTO) (RequestResponse, error) {
	if req.Resolution != model.StatusApproved && req.Resolution != model.StatusRejected {
		return RequestResponse{}, fmt.Errorf("%w: resolution must be approved or rejected", ErrValidation)
	}

	resolver, err := s.users.GetByID(ctx, resolverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: resolver not found", ErrForbidden)
		}
		return RequestResponse{}, fmt.Errorf("failed to load resolver: %w", err)
	}
	if !model.IsResolver(resolver.Role) {
		return RequestResponse{}, fmt.Errorf("%w: role %s may not resolve requests", ErrForbidden, resolver.Role)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
		}
		return RequestResponse{}, fmt.Errorf("failed to load request: %w", err)
	}

	// A manager only resolves requests of their direct reports.
	if resolver.Role == model.RoleManager {
		owner, ownerErr := s.users.GetByID(ctx, request.UserID)
		if ownerErr != nil {
			return RequestResponse{}, fmt.Errorf("failed to load request owner: %w", ownerErr)
		}
		if owner.ManagerID == nil || *owner.ManagerID != resolverID {
			return RequestResponse{}, fmt.Errorf("%w: request owner is not in your team", ErrForbidden)
		}
	}

	// Resolution is applied even if the request was already resolved; the
	// second write overwrites the first (last-writer-wins, no CAS).
	request.Status = req.Resolution
	request.AdminNote = req.AdminNote
	request.ResolvedBy = &resolverID
	request.UpdatedAt = time.Now()

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if saveErr := s.requests.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to update request: %w", saveErr)
		}

		action := model.ActionApproveRequest
		if req.Resolution == model.StatusRejected {
			action = model.ActionRejectRequest
		}
		details, _ := json.Marshal(map[string]interface{}{
			"resolution": req.Resolution,
			"admin_note": req.AdminNote,
			"owner_id":   request.UserID.String(),
		})
		audit := model.AuditLog{
			UserID:     &resolverID,
			Action:     action,
			EntityID:   request.ID.String(),
			EntityName: req.Resolution,
			Details:    string(details),
		}
		if auditErr := s.audit.Log(txCtx, &audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return RequestResponse{}, err
	}

	// The status change is durable at this point; notification is best-effort.
	message := fmt.Sprintf("Your vacation request was %s.", req.Resolution)
	if req.AdminNote != "" {
		message = fmt.Sprintf("Your vacation request was %s: %s", req.Resolution, req.AdminNote)
	}
	s.notifications.Notify(ctx, request.UserID, message, &request.ID)

	return s.reload(ctx, request.ID)
}

func (s *vacationService) Delete(ctx context.Context, requestID uuid.UUID, callerID uuid.UUID) error {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: request %s", ErrNotFound, requestID)
		}
		return fmt.Errorf("failed to load request: %w", err)
	}

	if request.UserID != callerID {
		caller, callerErr := s.users.GetByID(ctx, callerID)
		if callerErr != nil {
			return fmt.Errorf("failed to load caller: %w", callerErr)
		}
		if !model.IsAdminRole(caller.Role) {
			return fmt.Errorf("%w: only the owner or an admin may delete a request", ErrForbidden)
		}
	}

	// Removal is unconditional regardless of status; no notification.
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.requests.Delete(txCtx, requestID); delErr != nil {
			return fmt.Errorf("failed to delete request: %w", delErr)
		}
		details, _ := json.Marshal(map[string]interface{}{
			"owner_id": request.UserID.String(),
			"status":   request.Status,
		})
		audit := model.AuditLog{
			UserID:   &callerID,
			Action:   model.ActionDeleteRequest,
			EntityID: requestID.String(),
			Details:  string(details),
		}
		if auditErr := s.audit.Log(txCtx, &audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
}

func (s *vacationService) Get(ctx context.Context, requestID uuid.UUID, callerID uuid.UUID) (RequestResponse, error) {
	request, err := s.requests.FindByIDWithRelations(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
		}
		return RequestResponse{}, fmt.Errorf("failed to load request: %w", err)
	}

	if request.UserID != callerID {
		caller, callerErr := s.users.GetByID(ctx, callerID)
		if callerErr != nil {
			return RequestResponse{}, fmt.Errorf("failed to load caller: %w", callerErr)
		}
		allowed := model.IsAdminRole(caller.Role)
		if caller.Role == model.RoleManager {
			owner, ownerErr := s.users.GetByID(ctx, request.UserID)
			if ownerErr == nil && owner.ManagerID != nil && *owner.ManagerID == callerID {
				allowed = true
			}
		}
		if !allowed {
			return RequestResponse{}, fmt.Errorf("%w: not your request", ErrForbidden)
		}
	}

	return toRequestResponse(*request), nil
}

func (s *vacationService) ListOwn(ctx context.Context, userID uuid.UUID, filter ListRequestsFilter) ([]RequestResponse, int64, error) {
	return s.list(ctx, repository.RequestFilter{
		UserID: &userID,
		Status: filter.Status,
		Year:   filter.Year,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
}

func (s *vacationService) ListVisible(ctx context.Context, callerID uuid.UUID, filter ListRequestsFilter) ([]RequestResponse, int64, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load caller: %w", err)
	}

	repoFilter := repository.RequestFilter{
		Status: filter.Status,
		Year:   filter.Year,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}

	switch {
	case model.IsAdminRole(caller.Role):
		// no scoping
	case caller.Role == model.RoleManager:
		team, teamErr := s.users.ListByManager(ctx, callerID)
		if teamErr != nil {
			return nil, 0, fmt.Errorf("failed to load team: %w", teamErr)
		}
		if len(team) == 0 {
			return []RequestResponse{}, 0, nil
		}
		ids := make([]uuid.UUID, 0, len(team))
		for _, member := range team {
			ids = append(ids, member.ID)
		}
		repoFilter.UserIDs = ids
	default:
		return nil, 0, fmt.Errorf("%w: insufficient role to list requests", ErrForbidden)
	}

	return s.list(ctx, repoFilter)
}

func (s *vacationService) list(ctx context.Context, filter repository.RequestFilter) ([]RequestResponse, int64, error) {
	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requests: %w", err)
	}

	res := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, toRequestResponse(r))
	}
	return res, total, nil
}

func (s *vacationService) reload(ctx context.Context, id uuid.UUID) (RequestResponse, error) {
	request, err := s.requests.FindByIDWithRelations(ctx, id)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to reload request: %w", err)
	}
	return toRequestResponse(*request), nil
}

// --- Helpers ---

func toRequestResponse(r model.VacationRequest) RequestResponse {
	resp := RequestResponse{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		TypeID:    r.VacationTypeID.String(),
		StartDate: r.StartDate.Format(workdays.DateLayout),
		EndDate:   r.EndDate.Format(workdays.DateLayout),
		Days:      r.Days,
		Notes:     r.Notes,
		Status:    r.Status,
		AdminNote: r.AdminNote,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	if r.VacationType != nil {
		resp.TypeName = r.VacationType.Name
	}
	if r.ResolvedBy != nil {
		id := r.ResolvedBy.String()
		resp.ResolvedBy = &id
	}
	if r.Resolver != nil {
		resp.ResolverName = r.Resolver.Name
	}
	return resp
}
