package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// stubVenueService records the inputs of the calls exercised here; the rest
// are unused.
type stubVenueService struct {
	ports.VenueService
	filter  domain.VenueFilter
	uploads []ports.UploadedImage
	bodies  []string
	created ports.CreateVenueInput
}

func (s *stubVenueService) ListPublic(_ context.Context, f domain.VenueFilter) (domain.Page[*domain.Venue], error) {
	s.filter = f
	return domain.NewPage([]*domain.Venue{{ID: "v1"}}, 11, 2, 5), nil
}

func (s *stubVenueService) Create(_ context.Context, actor domain.Actor, in ports.CreateVenueInput) (*domain.Venue, error) {
	s.created = in
	return &domain.Venue{ID: "v1", ProviderID: actor.ID, Name: in.Name}, nil
}

func (s *stubVenueService) UploadImages(_ context.Context, _ domain.Actor, id string, files []ports.UploadedImage) (*domain.Venue, error) {
	s.uploads = files
	for _, f := range files {
		data, _ := io.ReadAll(f.Body)
		s.bodies = append(s.bodies, string(data))
	}
	return &domain.Venue{ID: id}, nil
}

func withActor(req *http.Request, actor domain.Actor) *http.Request {
	return req.WithContext(domain.WithActor(req.Context(), actor))
}

func TestVenueHandler_List_ParsesFilters(t *testing.T) {
	e := newTestEcho()
	svc := &stubVenueService{}
	h := NewVenueHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/venues?city=Pune&minPrice=1000&maxCapacity=300&facilities=parking,%20stage&sortBy=basePrice&sortOrder=asc&page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	f := svc.filter
	if f.City != "Pune" || f.MinPrice == nil || *f.MinPrice != 1000 || f.MaxPrice != nil {
		t.Fatalf("unexpected price/city filter: %+v", f)
	}
	if f.MaxCapacity == nil || *f.MaxCapacity != 300 || f.MinCapacity != nil {
		t.Fatalf("unexpected capacity filter: %+v", f)
	}
	if len(f.Facilities) != 2 || f.Facilities[1] != "stage" {
		t.Fatalf("unexpected facilities: %v", f.Facilities)
	}
	if f.SortBy != "basePrice" || f.SortDesc || f.Page != 2 || f.Limit != 5 {
		t.Fatalf("unexpected sort/paging: %+v", f)
	}

	pag := decodeEnvelope(t, rec)["result"].(map[string]any)["pagination"].(map[string]any)
	if pag["totalPages"].(float64) != 3 || pag["hasNext"] != true || pag["hasPrev"] != true {
		t.Fatalf("unexpected pagination: %+v", pag)
	}
}

func TestVenueHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubVenueService{}
	h := NewVenueHandler(svc)
	provider := domain.Actor{ID: "p1", Kind: domain.KindProvider}

	body := `{"name":"Garden","description":"Lawn","capacity":{"minGuests":10,"maxGuests":100},
		"address":{"street":"MG Road","city":"Pune","state":"MH","pincode":"411001"},
		"facilities":{"parking":true},"basePrice":5000,"images":[{"url":"https://x/1.jpg"}]}`
	rec := httptest.NewRecorder()
	c := e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/venues", body), provider), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !svc.created.Facilities.Parking || svc.created.Capacity.MaxGuests != 100 || len(svc.created.Images) != 1 {
		t.Fatalf("unexpected input: %+v", svc.created)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(withActor(jsonRequest(http.MethodPost, "/api/venues", `{"name":"Garden"}`), provider), rec)
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestVenueHandler_UploadImages(t *testing.T) {
	e := newTestEcho()
	svc := &stubVenueService{}
	h := NewVenueHandler(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.png", "b.png"} {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write([]byte("data-" + name))
	}
	_ = mw.WriteField("captions", "Front")
	_ = mw.WriteField("captions", "Hall")
	_ = mw.WriteField("primaryIndex", "1")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/venues/v9/images", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req = withActor(req, domain.Actor{ID: "p1", Kind: domain.KindProvider})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("v9")

	if err := h.UploadImages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(svc.uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(svc.uploads))
	}
	if svc.uploads[0].Caption != "Front" || svc.uploads[0].Primary || !svc.uploads[1].Primary {
		t.Fatalf("unexpected uploads: %+v", svc.uploads)
	}
	if svc.bodies[1] != "data-b.png" || svc.uploads[1].Field != "images" {
		t.Fatalf("unexpected body/field: %v %q", svc.bodies, svc.uploads[1].Field)
	}
}

func TestVenueHandler_UploadImages_NoFiles(t *testing.T) {
	e := newTestEcho()
	h := NewVenueHandler(&stubVenueService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("captions", "nothing")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/venues/v9/images", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req = withActor(req, domain.Actor{ID: "p1", Kind: domain.KindProvider})

	if err := h.UploadImages(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrImagesRequired) {
		t.Fatalf("expected ErrImagesRequired, got %v", err)
	}
}
