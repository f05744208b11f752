package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role enum constants
const (
	RoleUser       = "user"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// DefaultVacationDays is the annual allowance assigned when none is set.
const DefaultVacationDays = 21

// User represents the central user entity for logic and database structure
type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string      `gorm:"type:varchar(255);not null" json:"name"`
	Email             string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string      `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role              string      `gorm:"type:varchar(50);not null;default:'user'" json:"role"`
	TotalVacationDays int         `gorm:"not null;default:21" json:"total_vacation_days"`
	ManagerID         *uuid.UUID  `gorm:"type:uuid;index" json:"manager_id"`
	Manager           *User       `gorm:"foreignKey:ManagerID" json:"-"`
	DepartmentID      *uuid.UUID  `gorm:"type:uuid;index" json:"department_id"`
	Department        *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsResolver reports whether role may approve or reject requests.
func IsResolver(role string) bool {
	return role == RoleManager || role == RoleAdmin || role == RoleSuperAdmin
}

// IsAdminRole reports whether role has admin-level access.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
