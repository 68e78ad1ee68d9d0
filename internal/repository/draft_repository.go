package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"causajusta/internal/model"
)

// DraftRepository defines campaign draft persistence operations.
type DraftRepository interface {
	Create(ctx context.Context, draft *model.CampaignDraft) error
	Update(ctx context.Context, draft *model.CampaignDraft) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CampaignDraft, error)
	ListByUser(ctx context.Context, userID string) ([]model.CampaignDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

// Create creates a new draft.
func (r *draftRepository) Create(ctx context.Context, draft *model.CampaignDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// Update updates an existing draft.
func (r *draftRepository) Update(ctx context.Context, draft *model.CampaignDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

// FindByID finds a draft by ID.
func (r *draftRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CampaignDraft, error) {
	var draft model.CampaignDraft
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// ListByUser lists a user's drafts, most recently updated first.
func (r *draftRepository) ListByUser(ctx context.Context, userID string) ([]model.CampaignDraft, error) {
	var drafts []model.CampaignDraft
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// Delete soft-deletes a draft.
func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CampaignDraft{}, "id = ?", id).Error
}
