package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/gate"
	"causajusta/internal/session"
)

// GateHandler exposes the start-a-campaign action gate.
type GateHandler struct {
	gate     *gate.Gate
	sessions *session.Store
	cookies  *session.CookieCodec
}

// NewGateHandler creates a new gate handler.
func NewGateHandler(g *gate.Gate, sessions *session.Store, cookies *session.CookieCodec) *GateHandler {
	return &GateHandler{gate: g, sessions: sessions, cookies: cookies}
}

// GateResponse wraps a gate result with the client's intended destination so
// the login flow can send the user back after authenticating.
type GateResponse struct {
	gate.Result
	ReturnTo string `json:"returnTo,omitempty"`
}

// StartCampaign godoc
// @Summary Evaluate the start-a-campaign preconditions
// @Tags gate
// @Produce json
// @Param returnTo query string false "Destination to resume after remediation"
// @Success 200 {object} GateResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gate/start-campaign [post]
func (h *GateHandler) StartCampaign(c echo.Context) error {
	result, err := h.gate.Check(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return httpError(err)
	}

	resp := GateResponse{Result: *result}
	if result.Decision == gate.DecisionLogin {
		resp.ReturnTo = c.QueryParam("returnTo")
	}
	return c.JSON(http.StatusOK, resp)
}

// ChangeRole godoc
// @Summary Switch a donor to beneficiary and re-run the gate
// @Tags gate
// @Produce json
// @Success 200 {object} GateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gate/change-role [post]
func (h *GateHandler) ChangeRole(c echo.Context) error {
	id := h.sessionID(c)
	if id == "" {
		return c.JSON(http.StatusOK, GateResponse{Result: gate.Result{Decision: gate.DecisionLogin}})
	}
	result, err := h.gate.ChangeRole(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gate.ErrNotDonor) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, GateResponse{Result: *result})
}

// sessionID resolves the cookie without requiring it: a missing or stale
// session is the gate's first precondition, not a request error.
func (h *GateHandler) sessionID(c echo.Context) string {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	id, err := h.cookies.Decode(cookie.Value)
	if err != nil {
		return ""
	}
	return id
}
