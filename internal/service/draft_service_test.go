package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"causajusta/internal/campaign"
	apperrors "causajusta/internal/errors"
	"causajusta/internal/model"
)

// MockDraftRepository is a mock implementation of DraftRepository.
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Create(ctx context.Context, draft *model.CampaignDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Update(ctx context.Context, draft *model.CampaignDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CampaignDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CampaignDraft), args.Error(1)
}

func (m *MockDraftRepository) ListByUser(ctx context.Context, userID string) ([]model.CampaignDraft, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CampaignDraft), args.Error(1)
}

func (m *MockDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func draftForm() campaign.Form {
	return campaign.Form{
		Title: "Ayuda para Juan",
		Slug:  "ayuda-para-juan",
	}
}

func TestDraftService_Save(t *testing.T) {
	t.Run("new draft is created", func(t *testing.T) {
		mockRepo := new(MockDraftRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.CampaignDraft")).Return(nil)

		svc := NewDraftService(mockRepo)
		draft, err := svc.Save(context.Background(), "u1", "", draftForm())

		assert.NoError(t, err)
		assert.Equal(t, "u1", draft.UserID)
		assert.Equal(t, "Ayuda para Juan", draft.Title)
		assert.Contains(t, draft.Payload, `"ayuda-para-juan"`)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing draft is updated", func(t *testing.T) {
		draftID := uuid.New()
		mockRepo := new(MockDraftRepository)
		mockRepo.On("FindByID", mock.Anything, draftID).Return(&model.CampaignDraft{
			ID:     draftID,
			UserID: "u1",
			Title:  "Título viejo",
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.CampaignDraft")).Return(nil)

		svc := NewDraftService(mockRepo)
		draft, err := svc.Save(context.Background(), "u1", draftID.String(), draftForm())

		assert.NoError(t, err)
		assert.Equal(t, "Ayuda para Juan", draft.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("updating someone else's draft is rejected", func(t *testing.T) {
		draftID := uuid.New()
		mockRepo := new(MockDraftRepository)
		mockRepo.On("FindByID", mock.Anything, draftID).Return(&model.CampaignDraft{
			ID:     draftID,
			UserID: "other-user",
		}, nil)

		svc := NewDraftService(mockRepo)
		_, err := svc.Save(context.Background(), "u1", draftID.String(), draftForm())

		assert.ErrorIs(t, err, ErrDraftOwnership)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDraftService_Get(t *testing.T) {
	t.Run("returns the decoded form", func(t *testing.T) {
		draftID := uuid.New()
		mockRepo := new(MockDraftRepository)
		mockRepo.On("FindByID", mock.Anything, draftID).Return(&model.CampaignDraft{
			ID:      draftID,
			UserID:  "u1",
			Payload: `{"title":"Ayuda para Juan","slug":"ayuda-para-juan"}`,
		}, nil)

		svc := NewDraftService(mockRepo)
		_, form, err := svc.Get(context.Background(), "u1", draftID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Ayuda para Juan", form.Title)
		assert.Equal(t, "ayuda-para-juan", form.Slug)
	})

	t.Run("malformed id maps to not found", func(t *testing.T) {
		svc := NewDraftService(new(MockDraftRepository))
		_, _, err := svc.Get(context.Background(), "u1", "not-a-uuid")
		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	})

	t.Run("missing record maps to not found", func(t *testing.T) {
		draftID := uuid.New()
		mockRepo := new(MockDraftRepository)
		mockRepo.On("FindByID", mock.Anything, draftID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewDraftService(mockRepo)
		_, _, err := svc.Get(context.Background(), "u1", draftID.String())
		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	})
}

func TestDraftService_Delete(t *testing.T) {
	draftID := uuid.New()
	mockRepo := new(MockDraftRepository)
	mockRepo.On("FindByID", mock.Anything, draftID).Return(&model.CampaignDraft{
		ID:     draftID,
		UserID: "u1",
	}, nil)
	mockRepo.On("Delete", mock.Anything, draftID).Return(nil)

	svc := NewDraftService(mockRepo)
	assert.NoError(t, svc.Delete(context.Background(), "u1", draftID.String()))
	mockRepo.AssertExpectations(t)
}
