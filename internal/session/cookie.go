package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the single session cookie. Bearer credentials never reach the
// browser, only this signed pointer to the server-side session.
const CookieName = "cj_session"

// ErrInvalidCookie is returned when the session cookie fails validation.
var ErrInvalidCookie = errors.New("invalid session cookie")

// cookieClaims is the JWT payload carried by the session cookie.
type cookieClaims struct {
	jwt.RegisteredClaims
}

// CookieCodec mints and validates the signed session cookie.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	domain string
	secure bool
}

// NewCookieCodec creates a codec signing with the given secret.
func NewCookieCodec(secret string, ttl time.Duration, domain string, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl, domain: domain, secure: secure}
}

// Issue builds the session cookie for a session ID.
func (c *CookieCodec) Issue(sessionID string) (*http.Cookie, error) {
	now := time.Now()
	claims := &cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.domain,
		Expires:  now.Add(c.ttl),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode validates a cookie value and returns the session ID.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalidCookie
	}
	claims, ok := token.Claims.(*cookieClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidCookie
	}
	return claims.Subject, nil
}

// Secret exposes the signing secret for middleware that validates the same
// cookie (echo-jwt).
func (c *CookieCodec) Secret() []byte {
	return c.secret
}

// Clear builds an expired cookie that removes the session from the browser.
func (c *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
