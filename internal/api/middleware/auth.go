package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
	"github.com/venuehub/booking-api/internal/pkg/metrics"
)

// ActorFinder loads the request identity projection for one actor kind.
type ActorFinder interface {
	FindActor(ctx context.Context, id string) (*domain.Actor, error)
}

// GuardConfig wires the access guard. Revocations is optional.
type GuardConfig struct {
	Tokens      ports.TokenVerifier
	Users       ActorFinder
	Providers   ActorFinder
	Revocations ports.RevocationStore
	Logger      zerolog.Logger
}

// Auth is the access guard. It extracts the bearer token, verifies it,
// consults the revocation store, loads the actor named by the claims and
// attaches it to the request context. Every failure short-circuits with a
// typed domain error for the central error handler.
func Auth(cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			token, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject("no_token", domain.ErrUnauthenticated)
			}

			claims, err := cfg.Tokens.Verify(token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrTokenExpired):
				return reject("expired", domain.ErrTokenExpired)
			case errors.Is(err, domain.ErrInvalidToken):
				return reject("invalid", domain.ErrInvalidToken)
			default:
				return reject("internal", fmt.Errorf("%w: decode token: %v", domain.ErrAuthInternal, err))
			}

			if cfg.Revocations != nil {
				revoked, err := cfg.Revocations.IsRevoked(req.Context(), claims)
				if err != nil {
					return reject("internal", fmt.Errorf("%w: revocation lookup: %v", domain.ErrAuthInternal, err))
				}
				if revoked {
					return reject("revoked", domain.ErrTokenRevoked)
				}
			}

			finder := cfg.Users
			if claims.Kind == domain.KindProvider {
				finder = cfg.Providers
			}
			actor, err := finder.FindActor(req.Context(), claims.ActorID)
			if err != nil {
				if domain.IsNotFound(err) {
					return reject("actor_not_found", domain.ErrActorNotFound)
				}
				return reject("internal", fmt.Errorf("%w: load actor: %v", domain.ErrAuthInternal, err))
			}

			resolved := *actor
			resolved.Claims = claims
			c.SetRequest(req.WithContext(domain.WithActor(req.Context(), resolved)))

			cfg.Logger.Debug().
				Str("actor_id", resolved.ID).
				Str("kind", string(resolved.Kind)).
				Msg("request authenticated")

			return next(c)
		}
	}
}

func reject(reason string, err error) error {
	metrics.GuardRejections.WithLabelValues(reason).Inc()
	return err
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
