package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"causajusta/internal/campaign"
	apperrors "causajusta/internal/errors"
	"causajusta/internal/model"
	"causajusta/internal/repository"
)

// ErrDraftOwnership is returned when a draft belongs to another user.
var ErrDraftOwnership = errors.New("draft belongs to another user")

// DraftService handles campaign draft operations.
type DraftService interface {
	Save(ctx context.Context, userID string, draftID string, form campaign.Form) (*model.CampaignDraft, error)
	Get(ctx context.Context, userID, draftID string) (*model.CampaignDraft, campaign.Form, error)
	List(ctx context.Context, userID string) ([]model.CampaignDraft, error)
	Delete(ctx context.Context, userID, draftID string) error
}

type draftService struct {
	drafts repository.DraftRepository
}

// NewDraftService creates a new draft service.
func NewDraftService(drafts repository.DraftRepository) DraftService {
	return &draftService{drafts: drafts}
}

// Save creates a draft, or updates it when draftID is set. Drafts are
// deliberately not validated: half-finished forms are the point.
func (s *draftService) Save(ctx context.Context, userID string, draftID string, form campaign.Form) (*model.CampaignDraft, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("encode draft payload: %w", err)
	}

	if draftID == "" {
		draft := &model.CampaignDraft{
			UserID:  userID,
			Title:   form.Title,
			Slug:    form.Slug,
			Payload: string(payload),
		}
		if err := s.drafts.Create(ctx, draft); err != nil {
			return nil, fmt.Errorf("create draft: %w", err)
		}
		return draft, nil
	}

	draft, err := s.load(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	draft.Title = form.Title
	draft.Slug = form.Slug
	draft.Payload = string(payload)
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, fmt.Errorf("update draft: %w", err)
	}
	return draft, nil
}

// Get loads a draft and its decoded form state.
func (s *draftService) Get(ctx context.Context, userID, draftID string) (*model.CampaignDraft, campaign.Form, error) {
	draft, err := s.load(ctx, userID, draftID)
	if err != nil {
		return nil, campaign.Form{}, err
	}
	var form campaign.Form
	if err := json.Unmarshal([]byte(draft.Payload), &form); err != nil {
		return nil, campaign.Form{}, fmt.Errorf("decode draft payload: %w", err)
	}
	return draft, form, nil
}

// List lists a user's drafts.
func (s *draftService) List(ctx context.Context, userID string) ([]model.CampaignDraft, error) {
	return s.drafts.ListByUser(ctx, userID)
}

// Delete removes a draft after checking ownership.
func (s *draftService) Delete(ctx context.Context, userID, draftID string) error {
	draft, err := s.load(ctx, userID, draftID)
	if err != nil {
		return err
	}
	return s.drafts.Delete(ctx, draft.ID)
}

func (s *draftService) load(ctx context.Context, userID, draftID string) (*model.CampaignDraft, error) {
	id, err := uuid.Parse(draftID)
	if err != nil {
		return nil, apperrors.ErrDraftNotFound
	}
	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDraftNotFound
		}
		return nil, fmt.Errorf("find draft: %w", err)
	}
	if draft.UserID != userID {
		return nil, ErrDraftOwnership
	}
	return draft, nil
}
