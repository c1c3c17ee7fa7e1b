package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// Authenticate resolves the bearer token to a stored user and injects it into
// the context under "user". Every failure is reported as
// domain.ErrUnauthenticated so the error handler renders a 401.
func Authenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
