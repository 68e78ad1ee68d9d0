package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/errors"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// AuthHandler handles login, logout and account-security endpoints. It is the
// only place a session is created or destroyed.
type AuthHandler struct {
	client   *upstream.Client
	sessions *session.Store
	cookies  *session.CookieCodec
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(client *upstream.Client, sessions *session.Store, cookies *session.CookieCodec) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, cookies: cookies}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned after login and on session queries.
type SessionResponse struct {
	User             upstream.User `json:"user"`
	PaymentConnected *bool         `json:"paymentConnected,omitempty"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// UpdateRoleRequest represents a self-service role change request.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=DONOR BENEFICIARY"`
}

// Login godoc
// @Summary Log in and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.client.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		var ue *upstream.Error
		if stderrors.As(err, &ue) && ue.Status == http.StatusUnauthorized {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "email o contraseña incorrectos",
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return httpError(err)
	}

	sess, err := h.sessions.Create(c.Request().Context(), result.TokenPair, result.User)
	if err != nil {
		return httpError(err)
	}
	cookie, err := h.cookies.Issue(sess.ID)
	if err != nil {
		return httpError(err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, SessionResponse{User: sess.User})
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess, ok := session.Peek(c, h.sessions, h.cookies); ok {
		if err := h.sessions.Delete(c.Request().Context(), sess.ID); err != nil {
			return httpError(err)
		}
	}
	c.SetCookie(h.cookies.Clear())
	return c.JSON(http.StatusOK, map[string]string{"message": "sesión cerrada"})
}

// Me godoc
// @Summary Current session user
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	return c.JSON(http.StatusOK, SessionResponse{
		User:             sess.User,
		PaymentConnected: sess.PaymentConnected,
	})
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	source := h.sessions.Source(sess.ID)
	if err := h.client.ChangePassword(c.Request().Context(), source, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "contraseña actualizada"})
}

// UpdateRole godoc
// @Summary Change the account role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateRoleRequest true "Target role"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/update-role [post]
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	source := h.sessions.Source(sess.ID)
	if err := h.client.UpdateRole(ctx, source, upstream.Role(req.Role)); err != nil {
		return httpError(err)
	}
	user, err := h.client.Me(ctx, source)
	if err != nil {
		return httpError(err)
	}
	if err := h.sessions.SetUser(ctx, sess.ID, *user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, SessionResponse{User: *user})
}
