package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"causajusta/internal/service"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// AdminHandler handles campaign moderation and the gate audit trail. Routes
// are mounted behind the ADMIN role guard.
type AdminHandler struct {
	client   *upstream.Client
	sessions *session.Store
	audit    service.AuditService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(client *upstream.Client, sessions *session.Store, audit service.AuditService) *AdminHandler {
	return &AdminHandler{client: client, sessions: sessions, audit: audit}
}

// RejectRequest carries the optional moderation reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// List godoc
// @Summary List all campaigns for moderation
// @Tags admin
// @Produce json
// @Param status query string false "Campaign status"
// @Param page query int false "Page"
// @Success 200 {object} upstream.CampaignPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/campaigns [get]
func (h *AdminHandler) List(c echo.Context) error {
	sess, _ := session.Current(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	result, err := h.client.AdminListCampaigns(c.Request().Context(), h.sessions.Source(sess.ID), upstream.ListOptions{
		Status: upstream.CampaignStatus(c.QueryParam("status")),
		Page:   page,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Fetch one campaign for moderation
// @Tags admin
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} upstream.Campaign
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/campaigns/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	sess, _ := session.Current(c)
	result, err := h.client.AdminGetCampaign(c.Request().Context(), h.sessions.Source(sess.ID), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Verify godoc
// @Summary Approve a pending campaign
// @Tags admin
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/campaigns/{id}/verify [patch]
func (h *AdminHandler) Verify(c echo.Context) error {
	sess, _ := session.Current(c)
	if err := h.client.VerifyCampaign(c.Request().Context(), h.sessions.Source(sess.ID), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "campaña verificada"})
}

// Reject godoc
// @Summary Reject a pending campaign
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Campaign id"
// @Param request body RejectRequest false "Moderation reason"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/campaigns/{id}/reject [patch]
func (h *AdminHandler) Reject(c echo.Context) error {
	sess, _ := session.Current(c)
	var req RejectRequest
	_ = c.Bind(&req)
	if err := h.client.RejectCampaign(c.Request().Context(), h.sessions.Source(sess.ID), c.Param("id"), req.Reason); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "campaña rechazada"})
}

// GateEvents godoc
// @Summary Recent action-gate evaluations
// @Tags admin
// @Produce json
// @Param limit query int false "Max events"
// @Success 200 {array} model.GateEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/gate-events [get]
func (h *AdminHandler) GateEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, events)
}
