package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
)

type stubVerifier struct {
	claims domain.Claims
	err    error
}

func (s stubVerifier) Verify(string) (domain.Claims, error) { return s.claims, s.err }

type stubFinder struct {
	actors map[string]domain.Actor
	err    error
	calls  int
}

func (f *stubFinder) FindActor(_ context.Context, id string) (*domain.Actor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.actors[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &a, nil
}

type stubRevocations struct {
	revoked bool
	err     error
}

func (s stubRevocations) RevokeToken(context.Context, string, time.Time) error { return nil }
func (s stubRevocations) RevokeActor(context.Context, string, time.Time) error { return nil }
func (s stubRevocations) IsRevoked(context.Context, domain.Claims) (bool, error) {
	return s.revoked, s.err
}

func runGuard(t *testing.T, cfg GuardConfig, header string) (domain.Actor, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		seen   domain.Actor
		called bool
	)
	h := Auth(cfg)(func(c echo.Context) error {
		called = true
		seen, _ = domain.ActorFrom(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return seen, called, err
}

func userClaims() domain.Claims {
	return domain.Claims{ActorID: "u1", Kind: domain.KindUser, Email: "u@example.com", TokenID: "jti-1"}
}

func TestAuth_AttachesUserActor(t *testing.T) {
	users := &stubFinder{actors: map[string]domain.Actor{"u1": {ID: "u1", Kind: domain.KindUser, IsAdmin: true}}}
	providers := &stubFinder{}
	cfg := GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: users, Providers: providers, Logger: zerolog.Nop()}

	actor, called, err := runGuard(t, cfg, "Bearer good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if actor.ID != "u1" || !actor.IsAdmin || actor.Claims.TokenID != "jti-1" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if providers.calls != 0 {
		t.Fatalf("user token must not hit the provider collection")
	}
}

func TestAuth_RoutesProviderClaims(t *testing.T) {
	users := &stubFinder{}
	providers := &stubFinder{actors: map[string]domain.Actor{"p1": {ID: "p1", Kind: domain.KindProvider, IsApproved: true}}}
	claims := domain.Claims{ActorID: "p1", Kind: domain.KindProvider}
	cfg := GuardConfig{Tokens: stubVerifier{claims: claims}, Users: users, Providers: providers, Logger: zerolog.Nop()}

	actor, _, err := runGuard(t, cfg, "bearer provider-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.Kind != domain.KindProvider || users.calls != 0 {
		t.Fatalf("provider claims must resolve against providers, got %+v", actor)
	}
}

func TestAuth_Failures(t *testing.T) {
	known := &stubFinder{actors: map[string]domain.Actor{"u1": {ID: "u1", Kind: domain.KindUser}}}
	empty := &stubFinder{actors: map[string]domain.Actor{}}

	cases := []struct {
		name   string
		header string
		cfg    GuardConfig
		want   error
	}{
		{
			name: "no header",
			cfg:  GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: known, Providers: known},
			want: domain.ErrUnauthenticated,
		},
		{
			name:   "wrong scheme",
			header: "Basic dXNlcjpwYXNz",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: known, Providers: known},
			want:   domain.ErrUnauthenticated,
		},
		{
			name:   "empty bearer",
			header: "Bearer ",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: known, Providers: known},
			want:   domain.ErrUnauthenticated,
		},
		{
			name:   "expired",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{err: domain.ErrTokenExpired}, Users: known, Providers: known},
			want:   domain.ErrTokenExpired,
		},
		{
			name:   "malformed",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{err: domain.ErrInvalidToken}, Users: known, Providers: known},
			want:   domain.ErrInvalidToken,
		},
		{
			name:   "unknown decode failure",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{err: errors.New("boom")}, Users: known, Providers: known},
			want:   domain.ErrAuthInternal,
		},
		{
			name:   "revoked",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: known, Providers: known, Revocations: stubRevocations{revoked: true}},
			want:   domain.ErrTokenRevoked,
		},
		{
			name:   "revocation store down",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: known, Providers: known, Revocations: stubRevocations{err: errors.New("redis down")}},
			want:   domain.ErrAuthInternal,
		},
		{
			name:   "actor deleted after issuance",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: empty, Providers: empty},
			want:   domain.ErrActorNotFound,
		},
		{
			name:   "store failure",
			header: "Bearer x",
			cfg:    GuardConfig{Tokens: stubVerifier{claims: userClaims()}, Users: &stubFinder{err: errors.New("mongo down")}, Providers: known},
			want:   domain.ErrAuthInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logger = zerolog.Nop()
			_, called, err := runGuard(t, tc.cfg, tc.header)
			if called {
				t.Fatalf("next must not run")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
