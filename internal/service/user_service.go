package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"vacationhub/internal/model"
	"vacationhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	Role              string `json:"role" binding:"required"`
	TotalVacationDays int    `json:"total_vacation_days"`
	ManagerID         string `json:"manager_id"`
	DepartmentID      string `json:"department_id"`
}

type UpdateUserRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email" binding:"omitempty,email"`
	Role              string  `json:"role"`
	TotalVacationDays *int    `json:"total_vacation_days"`
	ManagerID         *string `json:"manager_id"`
	DepartmentID      *string `json:"department_id"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// DTO for returning User without exposing sensitive data
type UserResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	TotalVacationDays int     `json:"total_vacation_days"`
	ManagerID         *string `json:"manager_id"`
	DepartmentID      *string `json:"department_id"`
	DepartmentName    string  `json:"department_name,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, actorID *uuid.UUID, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error
}

type userService struct {
	repo      repository.UserRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, audit repository.AuditRepository, txManager repository.TransactionManager) UserService {
	return &userService{repo: repo, audit: audit, txManager: txManager}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key" // Development fallback only
	}
	return []byte(secret)
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:                user.ID.String(),
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role,
		TotalVacationDays: user.TotalVacationDays,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         user.UpdatedAt.Format(time.RFC3339),
	}
	if user.ManagerID != nil {
		id := user.ManagerID.String()
		resp.ManagerID = &id
	}
	if user.DepartmentID != nil {
		id := user.DepartmentID.String()
		resp.DepartmentID = &id
	}
	if user.Department != nil {
		resp.DepartmentName = user.Department.Name
	}
	return resp
}

func (s *userService) CreateUser(ctx context.Context, actorID *uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be user, manager, admin or super_admin", ErrValidation)
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	allowance := req.TotalVacationDays
	if allowance <= 0 {
		allowance = model.DefaultVacationDays
	}

	user := &model.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          string(hashedPassword),
		Role:              req.Role,
		TotalVacationDays: allowance,
	}
	if req.ManagerID != "" {
		managerID, parseErr := uuid.Parse(req.ManagerID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid manager id", ErrValidation)
		}
		user.ManagerID = &managerID
	}
	if req.DepartmentID != "" {
		deptID, parseErr := uuid.Parse(req.DepartmentID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid department id", ErrValidation)
		}
		user.DepartmentID = &deptID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, user); createErr != nil {
			return createErr
		}
		audit := model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionCreateUser,
			EntityID:   user.ID.String(),
			EntityName: user.Email,
		}
		return s.audit.Log(txCtx, &audit)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, req.RefreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: the old token is invalidated before new ones are issued.
	if err := s.repo.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.repo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenResponse{Token: tokenString, RefreshToken: refresh.Token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, fmt.Errorf("%w: role must be user, manager, admin or super_admin", ErrValidation)
		}
		user.Role = req.Role
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, fmt.Errorf("%w: email already exists", ErrValidation)
		}
		user.Email = req.Email
	}
	if req.TotalVacationDays != nil {
		if *req.TotalVacationDays < 0 {
			return nil, fmt.Errorf("%w: allowance cannot be negative", ErrValidation)
		}
		user.TotalVacationDays = *req.TotalVacationDays
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			user.ManagerID = nil
		} else {
			managerID, parseErr := uuid.Parse(*req.ManagerID)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: invalid manager id", ErrValidation)
			}
			user.ManagerID = &managerID
		}
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			user.DepartmentID = nil
		} else {
			deptID, parseErr := uuid.Parse(*req.DepartmentID)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: invalid department id", ErrValidation)
			}
			user.DepartmentID = &deptID
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, user); updateErr != nil {
			return updateErr
		}
		audit := model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionUpdateUser,
			EntityID:   user.ID.String(),
			EntityName: user.Email,
		}
		return s.audit.Log(txCtx, &audit)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.repo.Delete(txCtx, id); delErr != nil {
			return delErr
		}
		audit := model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionDeleteUser,
			EntityID:   id.String(),
			EntityName: user.Email,
		}
		return s.audit.Log(txCtx, &audit)
	})
}
