package service

import (
	"context"
	"log"

	"causajusta/internal/gate"
	"causajusta/internal/model"
	"causajusta/internal/repository"
	"causajusta/internal/upstream"
)

// AuditService records and lists gate evaluations.
type AuditService interface {
	gate.Recorder
	ListRecent(ctx context.Context, limit int) ([]model.GateEvent, error)
}

type auditService struct {
	events repository.GateEventRepository
}

// Ensure the service satisfies the gate's recorder contract.
var _ gate.Recorder = (*auditService)(nil)

// NewAuditService creates a new audit service.
func NewAuditService(events repository.GateEventRepository) AuditService {
	return &auditService{events: events}
}

// Record persists one gate evaluation. Audit writes never fail the request;
// errors are logged and dropped.
func (s *auditService) Record(ctx context.Context, userID string, role upstream.Role, decision gate.Decision) {
	event := &model.GateEvent{
		UserID:   userID,
		Role:     string(role),
		Decision: string(decision),
	}
	if err := s.events.Create(ctx, event); err != nil {
		log.Printf("gate audit write failed: %v", err)
	}
}

// ListRecent returns the most recent gate events.
func (s *auditService) ListRecent(ctx context.Context, limit int) ([]model.GateEvent, error) {
	return s.events.ListRecent(ctx, limit)
}
