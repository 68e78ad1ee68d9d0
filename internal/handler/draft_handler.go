package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/campaign"
	"causajusta/internal/model"
	"causajusta/internal/service"
	"causajusta/internal/session"
)

// DraftHandler handles campaign draft persistence for the multi-step form.
type DraftHandler struct {
	drafts service.DraftService
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(drafts service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// DraftResponse pairs a draft record with its decoded form state.
type DraftResponse struct {
	Draft *model.CampaignDraft `json:"draft"`
	Form  campaign.Form        `json:"form"`
}

// Save godoc
// @Summary Create or update a campaign draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param id query string false "Existing draft id"
// @Param request body campaign.Form true "Form state"
// @Success 200 {object} model.CampaignDraft
// @Failure 400 {object} errors.ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) Save(c echo.Context) error {
	sess, _ := session.Current(c)

	var form campaign.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	draft, err := h.drafts.Save(c.Request().Context(), sess.User.ID, c.QueryParam("id"), form)
	if err != nil {
		return h.draftError(err)
	}
	return c.JSON(http.StatusOK, draft)
}

// Get godoc
// @Summary Fetch one draft with its form state
// @Tags drafts
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c echo.Context) error {
	sess, _ := session.Current(c)
	draft, form, err := h.drafts.Get(c.Request().Context(), sess.User.ID, c.Param("id"))
	if err != nil {
		return h.draftError(err)
	}
	return c.JSON(http.StatusOK, DraftResponse{Draft: draft, Form: form})
}

// List godoc
// @Summary List the user's drafts
// @Tags drafts
// @Produce json
// @Success 200 {array} model.CampaignDraft
// @Router /drafts [get]
func (h *DraftHandler) List(c echo.Context) error {
	sess, _ := session.Current(c)
	drafts, err := h.drafts.List(c.Request().Context(), sess.User.ID)
	if err != nil {
		return h.draftError(err)
	}
	return c.JSON(http.StatusOK, drafts)
}

// Delete godoc
// @Summary Delete a draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /drafts/{id} [delete]
func (h *DraftHandler) Delete(c echo.Context) error {
	sess, _ := session.Current(c)
	if err := h.drafts.Delete(c.Request().Context(), sess.User.ID, c.Param("id")); err != nil {
		return h.draftError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "borrador eliminado"})
}

func (h *DraftHandler) draftError(err error) error {
	if errors.Is(err, service.ErrDraftOwnership) {
		return echo.NewHTTPError(http.StatusForbidden, "el borrador pertenece a otro usuario")
	}
	return httpError(err)
}
