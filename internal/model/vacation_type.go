package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeded vacation type names
const (
	TypeRegular  = "regular"
	TypeCasual   = "casual"
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeHoliday  = "holiday"
)

// VacationType is the categorical tag carried by every request.
type VacationType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (vt *VacationType) BeforeCreate(*gorm.DB) error {
	if vt.ID == uuid.Nil {
		vt.ID = uuid.New()
	}
	return nil
}
