package model

// StatusBreakdown aggregates request counts and chargeable days for one status.
type StatusBreakdown struct {
	Status   string `json:"status"`
	Requests int64  `json:"requests"`
	Days     int64  `json:"days"`
}

// TypeBreakdown aggregates approved usage per vacation type.
type TypeBreakdown struct {
	VacationTypeID string `json:"vacation_type_id"`
	TypeName       string `json:"type_name"`
	Requests       int64  `json:"requests"`
	Days           int64  `json:"days"`
}

// DepartmentBreakdown aggregates approved usage per department.
type DepartmentBreakdown struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Requests       int64  `json:"requests"`
	Days           int64  `json:"days"`
}

// UserRanking lists the heaviest vacation consumers of the year.
type UserRanking struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Days     int64  `json:"days"`
}

// StatisticsResponse is the admin dashboard payload for one calendar year.
type StatisticsResponse struct {
	Year           int                   `json:"year"`
	ByStatus       []StatusBreakdown     `json:"by_status"`
	ByType         []TypeBreakdown       `json:"by_type"`
	ByDepartment   []DepartmentBreakdown `json:"by_department"`
	TopUsers       []UserRanking         `json:"top_users"`
	TotalAllowance int64                 `json:"total_allowance"`
	TotalUsed      int64                 `json:"total_used"`
	UtilizationPct string                `json:"utilization_pct"`   // percentage with 2 decimals
	AvgDaysPerUser string                `json:"avg_days_per_user"` // 2 decimals
}
