package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GateEvent records one evaluation of the start-a-campaign gate: who asked,
// with which role, and what the gate decided.
type GateEvent struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:64;not null;index"`
	Role      string    `json:"role" gorm:"size:32;not null"`
	Decision  string    `json:"decision" gorm:"size:32;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (e *GateEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
