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

type stubOfferingService struct {
	ports.OfferingService
	filter  domain.OfferingFilter
	created ports.CreateOfferingInput
	update  domain.OfferingUpdate
	venueID string
	active  *bool
	toggled bool
}

func (s *stubOfferingService) ListPublic(_ context.Context, f domain.OfferingFilter) (domain.Page[*domain.Offering], error) {
	s.filter = f
	return domain.NewPage([]*domain.Offering{{ID: "s1"}}, 1, f.Page, f.Limit), nil
}

func (s *stubOfferingService) ListByVenue(_ context.Context, venueID string, active bool) ([]*domain.Offering, error) {
	s.venueID, s.active = venueID, &active
	return []*domain.Offering{}, nil
}

func (s *stubOfferingService) ListMine(_ context.Context, _ domain.Actor, f domain.OfferingFilter) (domain.Page[*domain.Offering], error) {
	s.filter = f
	return domain.NewPage([]*domain.Offering{}, 0, f.Page, f.Limit), nil
}

func (s *stubOfferingService) Create(_ context.Context, actor domain.Actor, in ports.CreateOfferingInput) (*domain.Offering, error) {
	s.created = in
	return &domain.Offering{ID: "s1", VenueID: in.VenueID, ProviderID: actor.ID, Name: in.Name, IsActive: true}, nil
}

func (s *stubOfferingService) Update(_ context.Context, _ domain.Actor, id string, u domain.OfferingUpdate) (*domain.Offering, error) {
	s.update = u
	return &domain.Offering{ID: id}, nil
}

func (s *stubOfferingService) ToggleStatus(_ context.Context, _ domain.Actor, id string) (*domain.Offering, error) {
	s.toggled = !s.toggled
	return &domain.Offering{ID: id, IsActive: !s.toggled}, nil
}

func TestOfferingHandler_List_ParsesFilters(t *testing.T) {
	e := newTestEcho()
	svc := &stubOfferingService{}
	h := NewOfferingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/services?venueId=v1&name=wedding&minPrice=500&maxPrice=abc&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	f := svc.filter
	if f.VenueID != "v1" || f.Name != "wedding" || f.MinPrice == nil || *f.MinPrice != 500 || f.MaxPrice != nil {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.Page != 2 || f.Limit != 5 {
		t.Fatalf("unexpected paging: %+v", f)
	}
	result := decodeEnvelope(t, rec)["result"].(map[string]any)
	if services := result["services"].([]any); len(services) != 1 {
		t.Fatalf("unexpected services: %v", services)
	}
}

func TestOfferingHandler_ByVenue_ActiveDefault(t *testing.T) {
	e := newTestEcho()
	cases := map[string]bool{
		"/api/services/venue/v1":                true,
		"/api/services/venue/v1?isActive=true":  true,
		"/api/services/venue/v1?isActive=false": false,
	}
	for target, want := range cases {
		svc := &stubOfferingService{}
		h := NewOfferingHandler(svc)
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetParamNames("venueId")
		c.SetParamValues("v1")
		if err := h.ByVenue(c); err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if svc.venueID != "v1" || svc.active == nil || *svc.active != want {
			t.Fatalf("%s: venue=%q active=%v", target, svc.venueID, svc.active)
		}
	}
}

func TestOfferingHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubOfferingService{}
	h := NewOfferingHandler(svc)

	body := `{"venueId":"v1","name":"birthday","price":12000,"inclusions":["cake","decor"]}`
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/services", body), providerActor), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.created.VenueID != "v1" || svc.created.Name != "birthday" || len(svc.created.Inclusions) != 2 {
		t.Fatalf("unexpected input: %+v", svc.created)
	}
	if msg := decodeEnvelope(t, rec)["meta"].(map[string]any)["message"]; msg != "Service created successfully" {
		t.Fatalf("unexpected message %v", msg)
	}

	for name, bad := range map[string]string{
		"missing venue":  `{"name":"birthday","price":1}`,
		"missing name":   `{"venueId":"v1","price":1}`,
		"negative price": `{"venueId":"v1","name":"birthday","price":-5}`,
	} {
		err := h.Create(e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/services", bad), providerActor), httptest.NewRecorder()))
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestOfferingHandler_UpdateAndToggle(t *testing.T) {
	e := newTestEcho()
	svc := &stubOfferingService{}
	h := NewOfferingHandler(svc)

	c := e.NewContext(withActor(jsonRequest(http.MethodPut, "/api/services/s1", `{"name":"wedding","price":0}`), providerActor), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if svc.update.Name == nil || *svc.update.Name != "wedding" || svc.update.Price == nil || *svc.update.Price != 0 {
		t.Fatalf("unexpected update: %+v", svc.update)
	}
	if svc.update.Description != nil || svc.update.Inclusions != nil {
		t.Fatalf("absent fields must stay unset: %+v", svc.update)
	}

	for _, want := range []string{"Service deactivated successfully", "Service activated successfully"} {
		rec := httptest.NewRecorder()
		c := e.NewContext(withActor(httptest.NewRequest(http.MethodPatch, "/api/services/s1/toggle-status", nil), providerActor), rec)
		c.SetParamNames("id")
		c.SetParamValues("s1")
		if err := h.ToggleStatus(c); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if msg := decodeEnvelope(t, rec)["meta"].(map[string]any)["message"]; msg != want {
			t.Fatalf("message = %v, want %q", msg, want)
		}
	}
}

func TestOfferingHandler_Mine_StatusFilter(t *testing.T) {
	e := newTestEcho()
	cases := map[string]*bool{
		"/api/services/mine":                   nil,
		"/api/services/mine?isActive=true":     boolValue(true),
		"/api/services/mine?isActive=false":    boolValue(false),
		"/api/services/mine?isActive=whatever": boolValue(false),
	}
	for target, want := range cases {
		svc := &stubOfferingService{}
		h := NewOfferingHandler(svc)
		if err := h.Mine(e.NewContext(withActor(httptest.NewRequest(http.MethodGet, target, nil), providerActor), httptest.NewRecorder())); err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		got := svc.filter.Active
		if (got == nil) != (want == nil) || (got != nil && *got != *want) {
			t.Fatalf("%s: active = %v, want %v", target, got, want)
		}
	}
}

func boolValue(b bool) *bool { return &b }
