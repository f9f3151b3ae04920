package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
)

func runWithActor(t *testing.T, mw echo.MiddlewareFunc, actor *domain.Actor) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if actor != nil {
		req = req.WithContext(domain.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireAdmin(t *testing.T) {
	admin := &domain.Actor{ID: "a", Kind: domain.KindUser, IsAdmin: true}
	user := &domain.Actor{ID: "u", Kind: domain.KindUser}

	if called, err := runWithActor(t, RequireAdmin(), admin); err != nil || !called {
		t.Fatalf("admin should pass: called=%v err=%v", called, err)
	}
	if _, err := runWithActor(t, RequireAdmin(), user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := runWithActor(t, RequireAdmin(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without guard, got %v", err)
	}
}

func TestRequireProvider(t *testing.T) {
	provider := &domain.Actor{ID: "p", Kind: domain.KindProvider}
	admin := &domain.Actor{ID: "a", Kind: domain.KindUser, IsAdmin: true}

	if called, err := runWithActor(t, RequireProvider(), provider); err != nil || !called {
		t.Fatalf("provider should pass: called=%v err=%v", called, err)
	}
	if _, err := runWithActor(t, RequireProvider(), admin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admins are not providers, got %v", err)
	}
}

func TestRequireUser(t *testing.T) {
	provider := &domain.Actor{ID: "p", Kind: domain.KindProvider}
	if _, err := runWithActor(t, RequireUser(), provider); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUploadHeaders(t *testing.T) {
	cases := map[string]bool{
		"/uploads/venues/a.webp": false,
		"/uploads/venues/b.svg":  true,
		"/uploads/venues/c.SVG":  true,
	}
	for target, attachment := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

		err := UploadHeaders()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		if err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if got := rec.Header().Get(echo.HeaderXContentTypeOptions); got != "nosniff" {
			t.Fatalf("%s: X-Content-Type-Options = %q", target, got)
		}
		if got := rec.Header().Get(echo.HeaderContentSecurityPolicy); got == "" {
			t.Fatalf("%s: missing Content-Security-Policy", target)
		}
		if got := rec.Header().Get(echo.HeaderContentDisposition) == "attachment"; got != attachment {
			t.Fatalf("%s: attachment = %v, want %v", target, got, attachment)
		}
	}
}
