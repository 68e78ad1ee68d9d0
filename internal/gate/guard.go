package gate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// RequireRole returns echo middleware that rejects sessions whose role is not
// in the allowed set. It runs after session.Resolve.
func RequireRole(roles ...upstream.Role) echo.MiddlewareFunc {
	allowed := make(map[upstream.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := session.Current(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			if _, ok := allowed[sess.Role()]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "role does not permit this action")
			}
			return next(c)
		}
	}
}
