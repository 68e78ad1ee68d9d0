package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignDraft holds an in-progress campaign form so a beneficiary can leave
// the multi-step flow and come back. Payload is the serialized form state.
type CampaignDraft struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id" gorm:"size:64;not null;index"`
	Title     string         `json:"title" gorm:"size:255"`
	Slug      string         `json:"slug" gorm:"size:255"`
	Payload   string         `json:"payload" gorm:"type:json"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (d *CampaignDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
