package service

import (
	"context"
	"testing"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryPendingNeverReserves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)
	typeID := env.regularTypeID(t).String()

	// One approved week (5 chargeable days), one pending week.
	approved, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: typeID,
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	_, err = env.vacation.Resolve(ctx, uuid.MustParse(approved.ID), admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	require.NoError(t, err)

	_, err = env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: typeID,
		StartDate:      "2024-07-01",
		EndDate:        "2024-07-05",
	})
	require.NoError(t, err)

	summary := env.balance.SummaryForYear(ctx, user.ID, 2024)
	assert.Equal(t, 5, summary.Used)
	assert.Equal(t, 5, summary.Pending)
	assert.Equal(t, 16, summary.Remaining, "pending days must not reduce remaining")
	assert.Equal(t, 21, summary.Total)
}

func TestSummaryRejectedCountsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)

	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	_, err = env.vacation.Resolve(ctx, uuid.MustParse(submitted.ID), admin.ID, ResolveRequestDTO{Resolution: model.StatusRejected})
	require.NoError(t, err)

	summary := env.balance.SummaryForYear(ctx, user.ID, 2024)
	assert.Zero(t, summary.Used)
	assert.Zero(t, summary.Pending)
	assert.Equal(t, 21, summary.Remaining)
}

func TestSummaryRederivesDaysFromDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)

	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	_, err = env.vacation.Resolve(ctx, uuid.MustParse(submitted.ID), admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	require.NoError(t, err)

	// Corrupt the cached day count; the summary must not trust it.
	require.NoError(t, env.db.Model(&model.VacationRequest{}).
		Where("id = ?", submitted.ID).
		Update("days", 999).Error)

	summary := env.balance.SummaryForYear(ctx, user.ID, 2024)
	assert.Equal(t, 5, summary.Used)
}

func TestSummaryLazilyCreatesUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	unknownID := uuid.New()

	summary := env.balance.Summary(ctx, unknownID)
	assert.Equal(t, VacationSummary{Used: 0, Pending: 0, Remaining: 21, Total: 21}, summary)

	// The placeholder row now exists with the default allowance.
	created, err := env.users.GetByID(ctx, unknownID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultVacationDays, created.TotalVacationDays)
	assert.Equal(t, model.RoleUser, created.Role)

	// Calling again is idempotent.
	again := env.balance.Summary(ctx, unknownID)
	assert.Equal(t, summary, again)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", unknownID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSummaryFailSoftOnReadFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, model.RoleUser, 30, nil)

	// Breaking the requests table must degrade to the default summary, not error.
	require.NoError(t, env.db.Migrator().DropTable(&model.VacationRequest{}))

	summary := env.balance.SummaryForYear(ctx, user.ID, 2024)
	assert.Equal(t, VacationSummary{Used: 0, Pending: 0, Remaining: 21, Total: 21}, summary)
}

func TestSummaryCountsOnlyOverlappingYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)
	typeID := env.regularTypeID(t).String()

	// One approved week per year; each summary must attribute only its own.
	for _, r := range [][2]string{
		{"2023-06-05", "2023-06-09"},
		{"2024-06-03", "2024-06-07"},
	} {
		submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
			VacationTypeID: typeID,
			StartDate:      r[0],
			EndDate:        r[1],
		})
		require.NoError(t, err)
		_, err = env.vacation.Resolve(ctx, uuid.MustParse(submitted.ID), admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
		require.NoError(t, err)
	}

	assert.Equal(t, 5, env.balance.SummaryForYear(ctx, user.ID, 2023).Used)
	assert.Equal(t, 5, env.balance.SummaryForYear(ctx, user.ID, 2024).Used)
	assert.Equal(t, 0, env.balance.SummaryForYear(ctx, user.ID, 2025).Used)
}

func TestSummaryForUserScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	manager := env.createUser(t, model.RoleManager, 21, nil)
	report := env.createUser(t, model.RoleUser, 25, &manager.ID)
	outsider := env.createUser(t, model.RoleUser, 21, nil)

	// A manager reads their direct reports.
	got, err := env.balance.SummaryForUser(ctx, manager.ID, report.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Total)

	// But nobody outside their team.
	_, err = env.balance.SummaryForUser(ctx, manager.ID, outsider.ID, 2024)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.balance.SummaryForUser(ctx, outsider.ID, report.ID, 2024)
	assert.ErrorIs(t, err, ErrForbidden)

	// Reading yourself needs no role; year zero means the current year.
	self, err := env.balance.SummaryForUser(ctx, outsider.ID, outsider.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 21, self.Total)

	// Admins read anyone.
	adminView, err := env.balance.SummaryForUser(ctx, admin.ID, report.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 25, adminView.Total)
}

func TestSummaryYearBoundaryOverlap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)

	// Dec 30 2024 (Mon) through Jan 3 2025 (Fri): five chargeable days.
	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-12-30",
		EndDate:        "2025-01-03",
	})
	require.NoError(t, err)
	_, err = env.vacation.Resolve(ctx, uuid.MustParse(submitted.ID), admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	require.NoError(t, err)

	// The straddling range is charged in full to every year it touches.
	assert.Equal(t, 5, env.balance.SummaryForYear(ctx, user.ID, 2024).Used)
	assert.Equal(t, 5, env.balance.SummaryForYear(ctx, user.ID, 2025).Used)
}
