package service

import (
	"context"
	"time"

	"vacationhub/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, year int) (model.StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates vacation usage for one calendar year. Counts use
// the stored per-request day cache; that is acceptable for a dashboard,
// the balance service is the authoritative per-user view.
func (s *statisticsService) GetStatistics(ctx context.Context, year int) (model.StatisticsResponse, error) {
	var response model.StatisticsResponse
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	response.Year = year

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	inYear := "end_date >= ? AND start_date <= ?"

	// Requests and day totals per status
	var byStatus []model.StatusBreakdown
	s.db.WithContext(ctx).Table("vacation_requests").
		Select("status, COUNT(*) as requests, COALESCE(SUM(days), 0) as days").
		Where(inYear, yearStart, yearEnd).
		Group("status").
		Scan(&byStatus)
	response.ByStatus = byStatus

	// Approved usage per vacation type
	var byType []model.TypeBreakdown
	s.db.WithContext(ctx).Table("vacation_requests").
		Select("vacation_types.id as vacation_type_id, vacation_types.name as type_name, COUNT(*) as requests, COALESCE(SUM(vacation_requests.days), 0) as days").
		Joins("JOIN vacation_types ON vacation_types.id = vacation_requests.vacation_type_id").
		Where("vacation_requests.status = ?", model.StatusApproved).
		Where(inYear, yearStart, yearEnd).
		Group("vacation_types.id, vacation_types.name").
		Order("days DESC").
		Scan(&byType)
	response.ByType = byType

	// Approved usage per department
	var byDepartment []model.DepartmentBreakdown
	s.db.WithContext(ctx).Table("vacation_requests").
		Select("departments.id as department_id, departments.name as department_name, COUNT(*) as requests, COALESCE(SUM(vacation_requests.days), 0) as days").
		Joins("JOIN users ON users.id = vacation_requests.user_id").
		Joins("JOIN departments ON departments.id = users.department_id").
		Where("vacation_requests.status = ?", model.StatusApproved).
		Where(inYear, yearStart, yearEnd).
		Group("departments.id, departments.name").
		Order("days DESC").
		Scan(&byDepartment)
	response.ByDepartment = byDepartment

	// Heaviest consumers
	var topUsers []model.UserRanking
	s.db.WithContext(ctx).Table("vacation_requests").
		Select("users.id as user_id, users.name as user_name, COALESCE(SUM(vacation_requests.days), 0) as days").
		Joins("JOIN users ON users.id = vacation_requests.user_id").
		Where("vacation_requests.status = ?", model.StatusApproved).
		Where(inYear, yearStart, yearEnd).
		Group("users.id, users.name").
		Order("days DESC").
		Limit(5).
		Scan(&topUsers)
	response.TopUsers = topUsers

	// Company-wide utilization
	var totals struct {
		Allowance int64
		Users     int64
	}
	s.db.WithContext(ctx).Table("users").
		Select("COALESCE(SUM(total_vacation_days), 0) as allowance, COUNT(*) as users").
		Scan(&totals)
	response.TotalAllowance = totals.Allowance

	var used struct {
		Days int64
	}
	s.db.WithContext(ctx).Table("vacation_requests").
		Select("COALESCE(SUM(days), 0) as days").
		Where("status = ?", model.StatusApproved).
		Where(inYear, yearStart, yearEnd).
		Scan(&used)
	response.TotalUsed = used.Days

	utilization := decimal.Zero
	if totals.Allowance > 0 {
		utilization = decimal.NewFromInt(used.Days).
			Div(decimal.NewFromInt(totals.Allowance)).
			Mul(decimal.NewFromInt(100))
	}
	response.UtilizationPct = utilization.StringFixed(2)

	avg := decimal.Zero
	if totals.Users > 0 {
		avg = decimal.NewFromInt(used.Days).Div(decimal.NewFromInt(totals.Users))
	}
	response.AvgDaysPerUser = avg.StringFixed(2)

	return response, nil
}
