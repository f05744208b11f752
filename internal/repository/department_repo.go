package repository

import (
	"context"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, page, limit int) ([]model.Department, int64, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).First(&dept, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, page, limit int) ([]model.Department, int64, error) {
	var depts []model.Department
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Department{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&depts).Error; err != nil {
		return nil, 0, err
	}

	return depts, total, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Department{}).Error
}
