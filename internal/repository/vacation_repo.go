package repository

import (
	"context"
	"time"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestFilter narrows List queries. Zero values mean "no filter".
type RequestFilter struct {
	UserID  *uuid.UUID
	UserIDs []uuid.UUID // team scoping for managers
	Status  string
	Year    int
	Page    int
	Limit   int
}

// VacationRepository defines data access for vacation requests.
type VacationRepository interface {
	Create(ctx context.Context, req *model.VacationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]model.VacationRequest, int64, error)
	// RangesByStatus returns the date ranges of a user's requests in the given
	// status whose range overlaps the calendar year.
	RangesByStatus(ctx context.Context, userID uuid.UUID, status string, year int) ([]model.VacationRequest, error)
	Update(ctx context.Context, req *model.VacationRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) VacationRepository {
	return &vacationRepository{db: db}
}

func (r *vacationRepository) Create(ctx context.Context, req *model.VacationRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *vacationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error) {
	var req model.VacationRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *vacationRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error) {
	var req model.VacationRequest
	if err := GetDB(ctx, r.db).
		Preload("User").
		Preload("VacationType").
		Preload("Resolver").
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *vacationRepository) applyFilter(db *gorm.DB, filter RequestFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if len(filter.UserIDs) > 0 {
		db = db.Where("user_id IN ?", filter.UserIDs)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Year != 0 {
		yearStart := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(filter.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		db = db.Where("end_date >= ? AND start_date <= ?", yearStart, yearEnd)
	}
	return db
}

func (r *vacationRepository) List(ctx context.Context, filter RequestFilter) ([]model.VacationRequest, int64, error) {
	var requests []model.VacationRequest
	var total int64

	db := GetDB(ctx, r.db)
	if err := r.applyFilter(db.Model(&model.VacationRequest{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := r.applyFilter(db, filter).
		Preload("User").
		Preload("VacationType").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit)
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *vacationRepository) RangesByStatus(ctx context.Context, userID uuid.UUID, status string, year int) ([]model.VacationRequest, error) {
	var requests []model.VacationRequest
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	err := GetDB(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, status).
		Where("end_date >= ? AND start_date <= ?", yearStart, yearEnd).
		Order("start_date").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *vacationRepository) Update(ctx context.Context, req *model.VacationRequest) error {
	return GetDB(ctx, r.db).Save(req).Error
}

func (r *vacationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VacationRequest{}).Error
}
