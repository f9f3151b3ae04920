package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/policy"
)

// currentActor returns the identity the access guard attached to the request.
// A handler reached without the guard fails closed with ErrUnauthenticated.
func currentActor(c echo.Context) (domain.Actor, error) {
	return policy.Current(c.Request().Context())
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid request payload")
	}
	return c.Validate(req)
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
