package repository

import (
	"context"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacationTypeRepository interface {
	Create(ctx context.Context, vt *model.VacationType) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.VacationType, error)
	GetByName(ctx context.Context, name string) (*model.VacationType, error)
	List(ctx context.Context) ([]model.VacationType, error)
	Update(ctx context.Context, vt *model.VacationType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vacationTypeRepository struct {
	db *gorm.DB
}

func NewVacationTypeRepository(db *gorm.DB) VacationTypeRepository {
	return &vacationTypeRepository{db: db}
}

func (r *vacationTypeRepository) Create(ctx context.Context, vt *model.VacationType) error {
	return GetDB(ctx, r.db).Create(vt).Error
}

func (r *vacationTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.VacationType, error) {
	var vt model.VacationType
	if err := GetDB(ctx, r.db).First(&vt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *vacationTypeRepository) GetByName(ctx context.Context, name string) (*model.VacationType, error) {
	var vt model.VacationType
	if err := GetDB(ctx, r.db).First(&vt, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *vacationTypeRepository) List(ctx context.Context) ([]model.VacationType, error) {
	var types []model.VacationType
	if err := GetDB(ctx, r.db).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *vacationTypeRepository) Update(ctx context.Context, vt *model.VacationType) error {
	return GetDB(ctx, r.db).Save(vt).Error
}

func (r *vacationTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VacationType{}).Error
}
