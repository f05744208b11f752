package service

import (
	"context"
	"testing"

	"vacationhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitExcludesWeekends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, model.RoleUser, 21, nil)

	// Friday through Monday spans four calendar days but charges two.
	res, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-05-10",
		EndDate:        "2024-05-13",
		Notes:          "long weekend",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, 2, res.Days)
	assert.Equal(t, "2024-05-10", res.StartDate)
	assert.Equal(t, "2024-05-13", res.EndDate)
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, model.RoleUser, 21, nil)
	typeID := env.regularTypeID(t).String()

	cases := []struct {
		name string
		req  SubmitRequestDTO
	}{
		{"inverted range", SubmitRequestDTO{VacationTypeID: typeID, StartDate: "2024-06-10", EndDate: "2024-06-07"}},
		{"bad start date", SubmitRequestDTO{VacationTypeID: typeID, StartDate: "June 3rd", EndDate: "2024-06-07"}},
		{"bad type id", SubmitRequestDTO{VacationTypeID: "not-a-uuid", StartDate: "2024-06-03", EndDate: "2024-06-07"}},
		{"unknown type", SubmitRequestDTO{VacationTypeID: uuid.NewString(), StartDate: "2024-06-03", EndDate: "2024-06-07"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.vacation.Submit(ctx, user.ID, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSubmitWritesNotificationAndAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, model.RoleUser, 21, nil)

	_, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)

	notifications, total, err := env.notify.List(ctx, user.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Contains(t, notifications[0].Message, "pending")

	var auditCount int64
	require.NoError(t, env.db.Model(&model.AuditLog{}).Where("action = ?", model.ActionSubmitRequest).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}

func TestResolveByManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createUser(t, model.RoleManager, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, &manager.ID)

	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	requestID := uuid.MustParse(submitted.ID)

	res, err := env.vacation.Resolve(ctx, requestID, manager.ID, ResolveRequestDTO{
		Resolution: model.StatusApproved,
		AdminNote:  "enjoy",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, res.Status)
	assert.Equal(t, "enjoy", res.AdminNote)
	require.NotNil(t, res.ResolvedBy)
	assert.Equal(t, manager.ID.String(), *res.ResolvedBy)

	// Owner is notified once for submission, once for the resolution.
	_, total, err := env.notify.List(ctx, user.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestResolveReappliesOnResolvedRequest(t *testing.T) {
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
	requestID := uuid.MustParse(submitted.ID)

	first, err := env.vacation.Resolve(ctx, requestID, admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, first.Status)

	// A second resolution is not rejected: the later write wins.
	second, err := env.vacation.Resolve(ctx, requestID, admin.ID, ResolveRequestDTO{
		Resolution: model.StatusRejected,
		AdminNote:  "headcount changed",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, second.Status)
	assert.Equal(t, "headcount changed", second.AdminNote)
}

func TestResolvePermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createUser(t, model.RoleManager, 21, nil)
	otherManager := env.createUser(t, model.RoleManager, 21, nil)
	plainUser := env.createUser(t, model.RoleUser, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, &manager.ID)

	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	requestID := uuid.MustParse(submitted.ID)

	_, err = env.vacation.Resolve(ctx, requestID, plainUser.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	assert.ErrorIs(t, err, ErrForbidden)

	// A manager cannot resolve requests outside their team.
	_, err = env.vacation.Resolve(ctx, requestID, otherManager.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.vacation.Resolve(ctx, uuid.New(), manager.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInAnyStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	user := env.createUser(t, model.RoleUser, 21, nil)
	stranger := env.createUser(t, model.RoleUser, 21, nil)

	submitted, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
		VacationTypeID: env.regularTypeID(t).String(),
		StartDate:      "2024-06-03",
		EndDate:        "2024-06-07",
	})
	require.NoError(t, err)
	requestID := uuid.MustParse(submitted.ID)

	_, err = env.vacation.Resolve(ctx, requestID, admin.ID, ResolveRequestDTO{Resolution: model.StatusApproved})
	require.NoError(t, err)

	err = env.vacation.Delete(ctx, requestID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Owner removes an already approved request; no notification is emitted.
	before, _, err := env.notify.List(ctx, user.ID, false, 1, 10)
	require.NoError(t, err)

	require.NoError(t, env.vacation.Delete(ctx, requestID, user.ID))

	err = env.vacation.Delete(ctx, requestID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	after, _, err := env.notify.List(ctx, user.ID, false, 1, 10)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestListVisibleScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, model.RoleAdmin, 21, nil)
	manager := env.createUser(t, model.RoleManager, 21, nil)
	emptyManager := env.createUser(t, model.RoleManager, 21, nil)
	report := env.createUser(t, model.RoleUser, 21, &manager.ID)
	outsider := env.createUser(t, model.RoleUser, 21, nil)

	typeID := env.regularTypeID(t).String()
	for _, owner := range []uuid.UUID{report.ID, outsider.ID} {
		_, err := env.vacation.Submit(ctx, owner, SubmitRequestDTO{
			VacationTypeID: typeID,
			StartDate:      "2024-06-03",
			EndDate:        "2024-06-07",
		})
		require.NoError(t, err)
	}

	all, total, err := env.vacation.ListVisible(ctx, admin.ID, ListRequestsFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	team, total, err := env.vacation.ListVisible(ctx, manager.ID, ListRequestsFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, team, 1)
	assert.Equal(t, report.ID.String(), team[0].UserID)

	empty, total, err := env.vacation.ListVisible(ctx, emptyManager.ID, ListRequestsFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)

	_, _, err = env.vacation.ListVisible(ctx, outsider.ID, ListRequestsFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListOwnYearFilterCountsOverlaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, model.RoleUser, 21, nil)
	typeID := env.regularTypeID(t).String()

	ranges := [][2]string{
		{"2023-12-27", "2024-01-03"}, // straddles the year boundary
		{"2024-07-01", "2024-07-05"},
		{"2023-03-06", "2023-03-10"}, // entirely previous year
	}
	for _, r := range ranges {
		_, err := env.vacation.Submit(ctx, user.ID, SubmitRequestDTO{
			VacationTypeID: typeID,
			StartDate:      r[0],
			EndDate:        r[1],
		})
		require.NoError(t, err)
	}

	// Partial overlap counts the whole range.
	_, total, err := env.vacation.ListOwn(ctx, user.ID, ListRequestsFilter{Year: 2024})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = env.vacation.ListOwn(ctx, user.ID, ListRequestsFilter{Year: 2023})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
