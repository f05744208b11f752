package service

import (
	"context"
	"errors"
	"fmt"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacationTypeDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type VacationTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type VacationTypeService interface {
	Create(ctx context.Context, actorID *uuid.UUID, req VacationTypeDTO) (VacationTypeResponse, error)
	List(ctx context.Context) ([]VacationTypeResponse, error)
	Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req VacationTypeDTO) (VacationTypeResponse, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error
}

type vacationTypeService struct {
	repo      repository.VacationTypeRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
}

func NewVacationTypeService(repo repository.VacationTypeRepository, audit repository.AuditRepository, txManager repository.TransactionManager) VacationTypeService {
	return &vacationTypeService{repo: repo, audit: audit, txManager: txManager}
}

func toTypeResponse(vt model.VacationType) VacationTypeResponse {
	return VacationTypeResponse{
		ID:          vt.ID.String(),
		Name:        vt.Name,
		Description: vt.Description,
	}
}

func (s *vacationTypeService) Create(ctx context.Context, actorID *uuid.UUID, req VacationTypeDTO) (VacationTypeResponse, error) {
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return VacationTypeResponse{}, fmt.Errorf("%w: vacation type already exists", ErrValidation)
	}

	vt := model.VacationType{Name: req.Name, Description: req.Description}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, &vt); createErr != nil {
			return createErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionCreateVacationType,
			EntityID:   vt.ID.String(),
			EntityName: vt.Name,
		})
	})
	if err != nil {
		return VacationTypeResponse{}, err
	}
	return toTypeResponse(vt), nil
}

func (s *vacationTypeService) List(ctx context.Context) ([]VacationTypeResponse, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]VacationTypeResponse, 0, len(types))
	for _, vt := range types {
		res = append(res, toTypeResponse(vt))
	}
	return res, nil
}

func (s *vacationTypeService) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req VacationTypeDTO) (VacationTypeResponse, error) {
	vt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VacationTypeResponse{}, fmt.Errorf("%w: vacation type %s", ErrNotFound, id)
		}
		return VacationTypeResponse{}, err
	}

	if req.Name != vt.Name {
		if _, nameErr := s.repo.GetByName(ctx, req.Name); nameErr == nil {
			return VacationTypeResponse{}, fmt.Errorf("%w: vacation type already exists", ErrValidation)
		}
	}
	vt.Name = req.Name
	vt.Description = req.Description

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, vt); updateErr != nil {
			return updateErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionUpdateVacationType,
			EntityID:   vt.ID.String(),
			EntityName: vt.Name,
		})
	})
	if err != nil {
		return VacationTypeResponse{}, err
	}
	return toTypeResponse(*vt), nil
}

func (s *vacationTypeService) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	vt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: vacation type %s", ErrNotFound, id)
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.repo.Delete(txCtx, id); delErr != nil {
			return delErr
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionDeleteVacationType,
			EntityID:   id.String(),
			EntityName: vt.Name,
		})
	})
}
