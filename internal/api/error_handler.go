package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/api/handler"
	"github.com/venuehub/booking-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain failure taxonomy to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the envelope {"meta":{"success":false,"message":...,"errors":[...]}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = handler.Fail(c, code, msg, fields)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("echo error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Fields
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrCapacityRange),
		errors.Is(err, domain.ErrMultiplePrimary),
		errors.Is(err, domain.ErrImagesRequired):
		return http.StatusBadRequest, err.Error(), nil

	case errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict, err.Error(), nil

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), nil
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error(), nil
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, domain.ErrTokenExpired.Error(), nil
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error(), nil
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, domain.ErrTokenRevoked.Error(), nil
	case errors.Is(err, domain.ErrActorNotFound):
		return http.StatusUnauthorized, domain.ErrActorNotFound.Error(), nil

	case errors.Is(err, domain.ErrNotApproved),
		errors.Is(err, domain.ErrDeactivated),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error(), nil

	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error(), nil

	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, domain.ErrFileTooLarge.Error(), nil
	case errors.Is(err, domain.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType, err.Error(), nil

	case errors.Is(err, domain.ErrAuthInternal):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("authentication failure")
		return http.StatusInternalServerError, domain.ErrAuthInternal.Error(), nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
