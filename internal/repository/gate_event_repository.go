package repository

import (
	"context"

	"gorm.io/gorm"

	"causajusta/internal/model"
)

// GateEventRepository defines gate audit persistence operations.
type GateEventRepository interface {
	Create(ctx context.Context, event *model.GateEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.GateEvent, error)
}

type gateEventRepository struct {
	db *gorm.DB
}

// NewGateEventRepository creates a new gate event repository.
func NewGateEventRepository(db *gorm.DB) GateEventRepository {
	return &gateEventRepository{db: db}
}

// Create records a gate evaluation.
func (r *gateEventRepository) Create(ctx context.Context, event *model.GateEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListRecent returns the most recent gate events.
func (r *gateEventRepository) ListRecent(ctx context.Context, limit int) ([]model.GateEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []model.GateEvent
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
