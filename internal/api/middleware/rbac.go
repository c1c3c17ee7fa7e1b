package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/core/domain"
)

// RequireAdmin lets through only callers whose stored record has is_admin set.
// It must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*domain.User)
			if !ok || user == nil {
				return domain.ErrUnauthenticated
			}
			if !user.IsAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
