package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// DashboardHandler handles donation listings and statistics.
type DashboardHandler struct {
	client   *upstream.Client
	sessions *session.Store
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(client *upstream.Client, sessions *session.Store) *DashboardHandler {
	return &DashboardHandler{client: client, sessions: sessions}
}

func paging(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

// DonationsReceived godoc
// @Summary Donations received by the beneficiary
// @Tags dashboard
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} upstream.DonationPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations/received [get]
func (h *DashboardHandler) DonationsReceived(c echo.Context) error {
	sess, _ := session.Current(c)
	page, limit := paging(c)
	result, err := h.client.DonationsReceived(c.Request().Context(), h.sessions.Source(sess.ID), page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DonationsMade godoc
// @Summary Donations made by the donor
// @Tags dashboard
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} upstream.DonationPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations/made [get]
func (h *DashboardHandler) DonationsMade(c echo.Context) error {
	sess, _ := session.Current(c)
	page, limit := paging(c)
	result, err := h.client.DonationsMade(c.Request().Context(), h.sessions.Source(sess.ID), page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// PlatformStats godoc
// @Summary Public platform statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} upstream.PlatformStatistics
// @Failure 502 {object} errors.ErrorResponse
// @Router /stats/platform [get]
func (h *DashboardHandler) PlatformStats(c echo.Context) error {
	stats, err := h.client.PlatformStats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// BeneficiaryStats godoc
// @Summary Beneficiary dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} upstream.BeneficiaryStatistics
// @Failure 403 {object} errors.ErrorResponse
// @Router /stats/beneficiary [get]
func (h *DashboardHandler) BeneficiaryStats(c echo.Context) error {
	sess, _ := session.Current(c)
	stats, err := h.client.BeneficiaryStats(c.Request().Context(), h.sessions.Source(sess.ID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
