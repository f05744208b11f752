package service

import (
	"testing"

	"vacationhub/internal/database"
	"vacationhub/internal/model"
	"vacationhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps each test isolated while letting the
	// pooled connections share state.
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	requests      repository.VacationRepository
	types         repository.VacationTypeRepository
	notifications repository.NotificationRepository
	audit         repository.AuditRepository
	txManager     repository.TransactionManager

	vacation VacationService
	balance  BalanceService
	notify   NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		requests:      repository.NewVacationRepository(db),
		types:         repository.NewVacationTypeRepository(db),
		notifications: repository.NewNotificationRepository(db),
		audit:         repository.NewAuditRepository(db),
		txManager:     repository.NewTransactionManager(db),
	}
	env.notify = NewNotificationService(env.notifications, nil)
	env.vacation = NewVacationService(env.requests, env.users, env.types, env.audit, env.txManager, env.notify)
	env.balance = NewBalanceService(env.users, env.requests)
	return env
}

func (e *testEnv) createUser(t *testing.T, role string, allowance int, managerID *uuid.UUID) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:                uuid.New(),
		Name:              role + "-" + uuid.NewString()[:8],
		Email:             uuid.NewString() + "@example.com",
		Password:          string(hash),
		Role:              role,
		TotalVacationDays: allowance,
		ManagerID:         managerID,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) regularTypeID(t *testing.T) uuid.UUID {
	t.Helper()

	var vt model.VacationType
	require.NoError(t, e.db.First(&vt, "name = ?", model.TypeRegular).Error)
	return vt.ID
}
