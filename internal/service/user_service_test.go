package service

import (
	"context"
	"testing"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(env *testEnv) UserService {
	return NewUserService(env.users, env.audit, env.txManager)
}

func TestCreateUserDefaultsAllowance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newUserService(env)
	admin := env.createUser(t, model.RoleAdmin, 21, nil)

	created, err := svc.CreateUser(ctx, &admin.ID, CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultVacationDays, created.TotalVacationDays)

	_, err = svc.CreateUser(ctx, &admin.ID, CreateUserRequest{
		Name:     "Dana Again",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     model.RoleUser,
	})
	assert.ErrorIs(t, err, ErrValidation, "duplicate email must be rejected")

	_, err = svc.CreateUser(ctx, &admin.ID, CreateUserRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "secret123",
		Role:     "root",
	})
	assert.ErrorIs(t, err, ErrValidation, "unknown role must be rejected")
}

func TestLoginAndRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newUserService(env)
	admin := env.createUser(t, model.RoleAdmin, 21, nil)

	_, err := svc.CreateUser(ctx, &admin.ID, CreateUserRequest{
		Name:     "Frank",
		Email:    "frank@example.com",
		Password: "secret123",
		Role:     model.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "frank@example.com", Password: "wrong"})
	assert.Error(t, err)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "frank@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token)
	require.NotEmpty(t, tokens.RefreshToken)

	rotated, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Error(t, err)

	require.NoError(t, svc.Logout(ctx, rotated.RefreshToken))
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.Error(t, err)
}

func TestUpdateUserAllowanceAndManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newUserService(env)
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	manager := env.createUser(t, model.RoleManager, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)

	managerID := manager.ID.String()
	allowance := 25
	updated, err := svc.UpdateUser(ctx, &admin.ID, user.ID, UpdateUserRequest{
		TotalVacationDays: &allowance,
		ManagerID:         &managerID,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TotalVacationDays)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, managerID, *updated.ManagerID)

	negative := -1
	_, err = svc.UpdateUser(ctx, &admin.ID, user.ID, UpdateUserRequest{TotalVacationDays: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUser(ctx, &admin.ID, uuid.New(), UpdateUserRequest{Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newUserService(env)
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)

	require.NoError(t, svc.DeleteUser(ctx, &admin.ID, user.ID))

	_, err := svc.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var auditCount int64
	require.NoError(t, env.db.Model(&model.AuditLog{}).Where("action = ?", model.ActionDeleteUser).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}
