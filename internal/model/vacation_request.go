package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VacationRequest status enum constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// VacationRequest is a single time-off request. Status starts at pending and
// moves to approved or rejected through resolution by a manager or admin.
// Days holds the chargeable count computed at creation; summaries re-derive
// counts from the stored dates rather than trusting this cache.
type VacationRequest struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;index:idx_requests_user_dates" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	VacationTypeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"vacation_type_id"`
	VacationType   *VacationType `gorm:"foreignKey:VacationTypeID" json:"vacation_type,omitempty"`
	StartDate      time.Time     `gorm:"type:date;not null;index:idx_requests_user_dates" json:"start_date"`
	EndDate        time.Time     `gorm:"type:date;not null;index:idx_requests_user_dates" json:"end_date"`
	Days           int           `gorm:"not null;default:0" json:"days"`
	Notes          string        `gorm:"type:text" json:"notes"`
	Status         string        `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNote      string        `gorm:"type:text" json:"admin_note"`
	ResolvedBy     *uuid.UUID    `gorm:"type:uuid" json:"resolved_by"`
	Resolver       *User         `gorm:"foreignKey:ResolvedBy" json:"resolver,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (r *VacationRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is a known request status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
