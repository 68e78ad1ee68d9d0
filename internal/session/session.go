// Package session is the single authority for browser session state. Every
// read and write goes through Store, the cookie is a pointer to the session,
// and Redis is the only serialization target. Tokens and the mirrored user
// record are never stored anywhere else.
package session

import (
	"time"

	"causajusta/internal/upstream"
)

// Session is the state held for one signed-in browser.
type Session struct {
	ID           string        `json:"id"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         upstream.User `json:"user"`
	// PaymentConnected caches the last positive MercadoPago status probe.
	// Nil means never checked.
	PaymentConnected *bool     `json:"payment_connected,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Role returns the session user's role.
func (s *Session) Role() upstream.Role {
	return s.User.Role
}
