package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/policy"
)

// RequireAdmin admits only administrators. Mount after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return require(policy.RequireAdmin)
}

// RequireProvider admits only provider tokens. Mount after Auth.
func RequireProvider() echo.MiddlewareFunc {
	return require(policy.RequireProvider)
}

// RequireUser admits only user tokens. Mount after Auth.
func RequireUser() echo.MiddlewareFunc {
	return require(policy.RequireUser)
}

func require(check func(context.Context) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := check(c.Request().Context()); err != nil {
				return err
			}
			return next(c)
		}
	}
}
