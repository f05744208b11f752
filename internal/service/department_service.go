package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type DepartmentService interface {
	Create(ctx context.Context, actorID *uuid.UUID, req DepartmentDTO) (DepartmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (DepartmentResponse, error)
	List(ctx context.Context, page, limit int) ([]DepartmentResponse, int64, error)
	Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req DepartmentDTO) (DepartmentResponse, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error
}

type departmentService struct {
	repo      repository.DepartmentRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
}

func NewDepartmentService(repo repository.DepartmentRepository, audit repository.AuditRepository, txManager repository.TransactionManager) DepartmentService {
	return &departmentService{repo: repo, audit: audit, txManager: txManager}
}

func toDepartmentResponse(d model.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

func (s *departmentService) Create(ctx context.Context, actorID *uuid.UUID, req DepartmentDTO) (DepartmentResponse, error) {
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return DepartmentResponse{}, fmt.Errorf("%w: department name already exists", ErrValidation)
	}

	dept := model.Department{Name: req.Name, Description: req.Description}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, &dept); createErr != nil {
			return createErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionCreateDepartment,
			EntityID:   dept.ID.String(),
			EntityName: dept.Name,
		})
	})
	if err != nil {
		return DepartmentResponse{}, err
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) Get(ctx context.Context, id uuid.UUID) (DepartmentResponse, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, fmt.Errorf("%w: department %s", ErrNotFound, id)
		}
		return DepartmentResponse{}, err
	}
	return toDepartmentResponse(*dept), nil
}

func (s *departmentService) List(ctx context.Context, page, limit int) ([]DepartmentResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	depts, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		res = append(res, toDepartmentResponse(d))
	}
	return res, total, nil
}

func (s *departmentService) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req DepartmentDTO) (DepartmentResponse, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, fmt.Errorf("%w: department %s", ErrNotFound, id)
		}
		return DepartmentResponse{}, err
	}

	if req.Name != dept.Name {
		if _, nameErr := s.repo.GetByName(ctx, req.Name); nameErr == nil {
			return DepartmentResponse{}, fmt.Errorf("%w: department name already exists", ErrValidation)
		}
	}
	dept.Name = req.Name
	dept.Description = req.Description

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, dept); updateErr != nil {
			return updateErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionUpdateDepartment,
			EntityID:   dept.ID.String(),
			EntityName: dept.Name,
		})
	})
	if err != nil {
		return DepartmentResponse{}, err
	}
	return toDepartmentResponse(*dept), nil
}

func (s *departmentService) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: department %s", ErrNotFound, id)
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.repo.Delete(txCtx, id); delErr != nil {
			return delErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionDeleteDepartment,
			EntityID:   id.String(),
			EntityName: dept.Name,
		})
	})
}
