package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const contextKey = "cj_session_data"

// Resolve returns echo middleware that loads the session referenced by the
// validated cookie JWT into the request context. It runs after echo-jwt has
// verified the cookie signature.
func Resolve(store *Store, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			id, err := codec.Decode(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			sess, err := store.Get(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}
			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// Current returns the session loaded by Resolve, if any.
func Current(c echo.Context) (*Session, bool) {
	sess, ok := c.Get(contextKey).(*Session)
	return sess, ok
}

// Peek resolves a session without failing the request: pages that degrade to
// an anonymous view (and the action gate's first precondition) use it.
func Peek(c echo.Context, store *Store, codec *CookieCodec) (*Session, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	id, err := codec.Decode(cookie.Value)
	if err != nil {
		return nil, false
	}
	sess, err := store.Get(c.Request().Context(), id)
	if err != nil {
		return nil, false
	}
	return sess, true
}
