package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"
	"vacationhub/pkg/workdays"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VacationSummary is derived on every call from the stored requests of the
// current calendar year; the per-request day cache is not trusted.
type VacationSummary struct {
	Used      int `json:"used"`
	Pending   int `json:"pending"`
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// BalanceService computes per-user vacation summaries. Pending days are
// informational only and never reserve allowance, so remaining is
// total minus used. The service is fail-soft: a nonexistent user gets the
// default allowance (and is lazily created), and read failures fall back to
// the default summary so a dashboard never errors out.
type BalanceService interface {
	Summary(ctx context.Context, userID uuid.UUID) VacationSummary
	SummaryForYear(ctx context.Context, userID uuid.UUID, year int) VacationSummary
	// SummaryForUser reads another user's summary on behalf of caller:
	// admins may read anyone, managers their direct reports, everyone
	// themselves. A year of zero means the current year.
	SummaryForUser(ctx context.Context, callerID, targetID uuid.UUID, year int) (VacationSummary, error)
}

type balanceService struct {
	users    repository.UserRepository
	requests repository.VacationRepository
}

func NewBalanceService(users repository.UserRepository, requests repository.VacationRepository) BalanceService {
	return &balanceService{users: users, requests: requests}
}

func defaultSummary() VacationSummary {
	return VacationSummary{
		Used:      0,
		Pending:   0,
		Remaining: model.DefaultVacationDays,
		Total:     model.DefaultVacationDays,
	}
}

func (s *balanceService) Summary(ctx context.Context, userID uuid.UUID) VacationSummary {
	return s.SummaryForYear(ctx, userID, time.Now().UTC().Year())
}

func (s *balanceService) SummaryForYear(ctx context.Context, userID uuid.UUID, year int) VacationSummary {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("balance: failed to read user %s: %v", userID, err)
			return defaultSummary()
		}
		user, err = s.ensureUser(ctx, userID)
		if err != nil {
			log.Printf("balance: lazy user creation failed for %s: %v", userID, err)
			return defaultSummary()
		}
	}

	used, err := s.sumDays(ctx, userID, model.StatusApproved, year)
	if err != nil {
		log.Printf("balance: failed to read approved ranges for %s: %v", userID, err)
		return defaultSummary()
	}
	pending, err := s.sumDays(ctx, userID, model.StatusPending, year)
	if err != nil {
		log.Printf("balance: failed to read pending ranges for %s: %v", userID, err)
		return defaultSummary()
	}

	return VacationSummary{
		Used:      used,
		Pending:   pending,
		Remaining: user.TotalVacationDays - used,
		Total:     user.TotalVacationDays,
	}
}

func (s *balanceService) SummaryForUser(ctx context.Context, callerID, targetID uuid.UUID, year int) (VacationSummary, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}
	if callerID == targetID {
		return s.SummaryForYear(ctx, targetID, year), nil
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return VacationSummary{}, fmt.Errorf("failed to load caller: %w", err)
	}

	switch {
	case model.IsAdminRole(caller.Role):
	case caller.Role == model.RoleManager:
		target, targetErr := s.users.GetByID(ctx, targetID)
		if targetErr != nil {
			if errors.Is(targetErr, gorm.ErrRecordNotFound) {
				return VacationSummary{}, fmt.Errorf("%w: user is not in your team", ErrForbidden)
			}
			return VacationSummary{}, fmt.Errorf("failed to load user: %w", targetErr)
		}
		if target.ManagerID == nil || *target.ManagerID != callerID {
			return VacationSummary{}, fmt.Errorf("%w: user is not in your team", ErrForbidden)
		}
	default:
		return VacationSummary{}, fmt.Errorf("%w: only managers and admins may view another user's balance", ErrForbidden)
	}

	return s.SummaryForYear(ctx, targetID, year), nil
}

// ensureUser creates a placeholder record with the default allowance.
// Idempotent: a concurrent creation wins and we read the existing row back.
func (s *balanceService) ensureUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	placeholder := &model.User{
		ID:                userID,
		Name:              "unknown",
		Email:             userID.String() + "@placeholder.local",
		Password:          "!", // unusable hash; the user must be provisioned properly to log in
		Role:              model.RoleUser,
		TotalVacationDays: model.DefaultVacationDays,
	}
	if err := s.users.CreateIfAbsent(ctx, placeholder); err != nil {
		// Fall back to reading; another writer may have created the row.
		if existing, readErr := s.users.GetByID(ctx, userID); readErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *balanceService) sumDays(ctx context.Context, userID uuid.UUID, status string, year int) (int, error) {
	requests, err := s.requests.RangesByStatus(ctx, userID, status, year)
	if err != nil {
		return 0, err
	}
	// The SQL range filter only narrows the scan; year attribution itself
	// follows workdays.Overlaps, the same rule the calculator tests pin down.
	total := 0
	for _, r := range requests {
		if !workdays.Overlaps(r.StartDate, r.EndDate, year) {
			continue
		}
		total += workdays.Chargeable(r.StartDate, r.EndDate, true)
	}
	return total, nil
}
