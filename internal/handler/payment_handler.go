package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// PaymentHandler exposes the Mercado Pago account linking flow.
type PaymentHandler struct {
	client   *upstream.Client
	sessions *session.Store
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(client *upstream.Client, sessions *session.Store) *PaymentHandler {
	return &PaymentHandler{client: client, sessions: sessions}
}

// StatusResponse reports whether the account is linked.
type StatusResponse struct {
	Connected bool `json:"connected"`
}

// ConnectResponse carries the OAuth authorization URL.
type ConnectResponse struct {
	URL string `json:"url"`
}

// Status godoc
// @Summary Check Mercado Pago link status
// @Tags payments
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /payments/status [get]
func (h *PaymentHandler) Status(c echo.Context) error {
	sess, _ := session.Current(c)

	connected, err := h.client.PaymentConnected(c.Request().Context(), h.sessions.Source(sess.ID))
	if err != nil {
		return httpError(err)
	}
	if err := h.sessions.SetPaymentConnected(c.Request().Context(), sess.ID, connected); err != nil {
		c.Logger().Warnf("session payment flag not cached: %v", err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Connected: connected})
}

// Connect godoc
// @Summary Get the Mercado Pago authorization URL
// @Tags payments
// @Produce json
// @Success 200 {object} ConnectResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /payments/connect [get]
func (h *PaymentHandler) Connect(c echo.Context) error {
	sess, _ := session.Current(c)

	url, err := h.client.PaymentConnectURL(c.Request().Context(), h.sessions.Source(sess.ID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ConnectResponse{URL: url})
}
