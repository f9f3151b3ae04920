package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

type stubCategoryService struct {
	ports.CategoryService
	names  map[domain.CategoryName]bool
	active *bool
	set    *bool
}

func (s *stubCategoryService) Create(_ context.Context, _ domain.Actor, c domain.Category) (*domain.Category, error) {
	if s.names[c.Name] {
		return nil, domain.ErrCategoryExists
	}
	if s.names == nil {
		s.names = map[domain.CategoryName]bool{}
	}
	s.names[c.Name] = true
	c.ID = "c1"
	c.IsActive = true
	return &c, nil
}

func (s *stubCategoryService) List(_ context.Context, active *bool) ([]*domain.Category, error) {
	s.active = active
	return []*domain.Category{{ID: "c1", Name: "wedding"}}, nil
}

func (s *stubCategoryService) SetActive(_ context.Context, _ domain.Actor, id string, active bool) (*domain.Category, error) {
	s.set = &active
	return &domain.Category{ID: id, IsActive: active}, nil
}

func TestCategoryHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	h := NewCategoryHandler(&stubCategoryService{})
	body := `{"name":"wedding","description":"Weddings"}`

	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/categories", body), adminActor), rec)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	err := h.Create(e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/categories", body), adminActor), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryHandler_Create_RequiresName(t *testing.T) {
	e := newTestEcho()
	h := NewCategoryHandler(&stubCategoryService{})

	err := h.Create(e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/categories", `{"description":"x"}`), adminActor), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCategoryHandler_List_ActiveFlag(t *testing.T) {
	e := newTestEcho()
	stub := &stubCategoryService{}
	h := NewCategoryHandler(stub)

	if err := h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/categories?active=false", nil), httptest.NewRecorder())); err != nil {
		t.Fatalf("list: %v", err)
	}
	if stub.active == nil || *stub.active {
		t.Fatalf("expected active=false, got %v", stub.active)
	}

	if err := h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/categories", nil), httptest.NewRecorder())); err != nil {
		t.Fatalf("list: %v", err)
	}
	if stub.active != nil {
		t.Fatalf("no flag means every category, got %v", *stub.active)
	}
}

func TestCategoryHandler_SetStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubCategoryService{}
	h := NewCategoryHandler(stub)

	c := e.NewContext(withActor(jsonRequest(http.MethodPut, "/api/categories/c1/status", `{}`), adminActor), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.SetStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("isActive is required, got %v", err)
	}

	rec := httptest.NewRecorder()
	c = e.NewContext(withActor(jsonRequest(http.MethodPut, "/api/categories/c1/status", `{"isActive":false}`), adminActor), rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.SetStatus(c); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if stub.set == nil || *stub.set {
		t.Fatalf("expected false to reach the service, got %v", stub.set)
	}
}
