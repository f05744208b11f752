package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a per-user message emitted by the request lifecycle.
// Creation is fire-and-forget: a failed insert never fails the operation
// that triggered it.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	RequestID *uuid.UUID `gorm:"type:uuid;index" json:"request_id"`
	IsRead    bool       `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
