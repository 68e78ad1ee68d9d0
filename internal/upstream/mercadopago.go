package upstream

import (
	"context"
	"net/http"
	"time"
)

// paymentStatusTimeout bounds the MercadoPago status probe so a slow provider
// check cannot stall the action gate.
const paymentStatusTimeout = 5 * time.Second

// PaymentConnected reports whether the user's MercadoPago account is linked.
func (c *Client) PaymentConnected(ctx context.Context, ts TokenSource) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, paymentStatusTimeout)
	defer cancel()

	var status PaymentStatus
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "mercadopago/status"}, &status); err != nil {
		return false, err
	}
	return status.Connected, nil
}

// PaymentConnectURL fetches the hosted authorization URL for linking a
// MercadoPago account.
func (c *Client) PaymentConnectURL(ctx context.Context, ts TokenSource) (string, error) {
	var target ConnectTarget
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "mercadopago/connect"}, &target); err != nil {
		return "", err
	}
	return target.URL, nil
}
