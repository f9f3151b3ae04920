package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// venueImagesField is the multipart field carrying venue pictures.
const venueImagesField = "images"

type VenueHandler struct {
	venues ports.VenueService
}

func NewVenueHandler(venues ports.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

type capacityRequest struct {
	MinGuests int `json:"minGuests" validate:"required,gte=1"`
	MaxGuests int `json:"maxGuests" validate:"required,gte=1"`
}

type venueAddressRequest struct {
	Street  string `json:"street" validate:"required"`
	Area    string `json:"area,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

func (a venueAddressRequest) toDomain() domain.Address {
	return domain.Address{Street: a.Street, Area: a.Area, City: a.City, State: a.State, Pincode: a.Pincode}
}

type venueImageRequest struct {
	URL       string `json:"url" validate:"required"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

func toVenueImages(in []venueImageRequest) []domain.VenueImage {
	if in == nil {
		return nil
	}
	out := make([]domain.VenueImage, 0, len(in))
	for _, img := range in {
		out = append(out, domain.VenueImage{URL: img.URL, Caption: img.Caption, IsPrimary: img.IsPrimary})
	}
	return out
}

type createVenueRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Capacity    capacityRequest     `json:"capacity"`
	Address     venueAddressRequest `json:"address"`
	Facilities  domain.Facilities   `json:"facilities"`
	Images      []venueImageRequest `json:"images,omitempty" validate:"omitempty,dive"`
	BasePrice   float64             `json:"basePrice" validate:"gte=0"`
}

type updateVenueRequest struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Capacity    *capacityRequest     `json:"capacity,omitempty"`
	Address     *venueAddressRequest `json:"address,omitempty"`
	Facilities  *domain.Facilities   `json:"facilities,omitempty"`
	Images      []venueImageRequest  `json:"images,omitempty" validate:"omitempty,dive"`
	BasePrice   *float64             `json:"basePrice,omitempty" validate:"omitempty,gte=0"`
}

func (r updateVenueRequest) toDomain() domain.VenueUpdate {
	u := domain.VenueUpdate{
		Name:        r.Name,
		Description: r.Description,
		Facilities:  r.Facilities,
		BasePrice:   r.BasePrice,
		Images:      toVenueImages(r.Images),
	}
	if r.Capacity != nil {
		u.Capacity = &domain.Capacity{MinGuests: r.Capacity.MinGuests, MaxGuests: r.Capacity.MaxGuests}
	}
	if r.Address != nil {
		a := r.Address.toDomain()
		u.Address = &a
	}
	return u
}

type venueListResponse struct {
	Venues     []*domain.Venue `json:"venues"`
	Pagination pagination      `json:"pagination"`
}

// List is the public venue catalog.
//
// @Summary      Browse venues
// @Tags         venues
// @Produce      json
// @Param        city         query     string  false  "City"
// @Param        state        query     string  false  "State"
// @Param        minPrice     query     number  false  "Minimum base price"
// @Param        maxPrice     query     number  false  "Maximum base price"
// @Param        minCapacity  query     int     false  "Guests the venue must hold"
// @Param        maxCapacity  query     int     false  "Guests the venue must accept as minimum"
// @Param        facilities   query     string  false  "Comma separated facility keys"
// @Param        sortBy       query     string  false  "createdAt, basePrice, averageRating or name"
// @Param        sortOrder    query     string  false  "asc or desc"
// @Param        page         query     int     false  "Page"   default(1)
// @Param        limit        query     int     false  "Limit"  default(10)
// @Success      200          {object}  Envelope{result=venueListResponse}
// @Router       /api/venues [get]
func (h *VenueHandler) List(c echo.Context) error {
	filter := domain.VenueFilter{
		City:     c.QueryParam("city"),
		State:    c.QueryParam("state"),
		SortBy:   c.QueryParam("sortBy"),
		SortDesc: c.QueryParam("sortOrder") != "asc",
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}
	filter.MinPrice = queryFloat(c, "minPrice")
	filter.MaxPrice = queryFloat(c, "maxPrice")
	if n, ok := queryOptInt(c, "minCapacity"); ok {
		filter.MinCapacity = &n
	}
	if n, ok := queryOptInt(c, "maxCapacity"); ok {
		filter.MaxCapacity = &n
	}
	for _, f := range strings.Split(c.QueryParam("facilities"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			filter.Facilities = append(filter.Facilities, f)
		}
	}

	page, err := h.venues.ListPublic(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Venues fetched successfully", venueListResponse{
		Venues:     page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Get returns one venue.
//
// @Summary      Get venue
// @Tags         venues
// @Produce      json
// @Param        id   path      string  true  "Venue ID"
// @Success      200  {object}  Envelope{result=domain.Venue}
// @Failure      404  {object}  Envelope
// @Router       /api/venues/{id} [get]
func (h *VenueHandler) Get(c echo.Context) error {
	venue, err := h.venues.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Venue fetched successfully", venue)
}

// Create adds a venue for the signed-in, approved provider.
//
// @Summary      Create venue
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVenueRequest  true  "Venue"
// @Success      201   {object}  Envelope{result=domain.Venue}
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /api/venues [post]
func (h *VenueHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createVenueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	venue, err := h.venues.Create(c.Request().Context(), actor, ports.CreateVenueInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    domain.Capacity{MinGuests: req.Capacity.MinGuests, MaxGuests: req.Capacity.MaxGuests},
		Address:     req.Address.toDomain(),
		Facilities:  req.Facilities,
		Images:      toVenueImages(req.Images),
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Venue created successfully", venue)
}

// Mine lists the signed-in provider's venues.
//
// @Summary      My venues
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "active, inactive or all"
// @Param        page    query     int     false  "Page"   default(1)
// @Param        limit   query     int     false  "Limit"  default(10)
// @Success      200     {object}  Envelope{result=venueListResponse}
// @Router       /api/venues/mine [get]
func (h *VenueHandler) Mine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	page, err := h.venues.ListMine(c.Request().Context(), actor, c.QueryParam("status"), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Venues fetched successfully", venueListResponse{
		Venues:     page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Update edits a venue owned by the signed-in provider.
//
// @Summary      Update venue
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Venue ID"
// @Param        body  body      updateVenueRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{result=domain.Venue}
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/venues/{id} [put]
func (h *VenueHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateVenueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	venue, err := h.venues.Update(c.Request().Context(), actor, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Venue updated successfully", venue)
}

// Delete removes a venue owned by the signed-in provider.
//
// @Summary      Delete venue
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Venue ID"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /api/venues/{id} [delete]
func (h *VenueHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.venues.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Venue deleted successfully", nil)
}

// ToggleStatus flips a venue between active and inactive.
//
// @Summary      Toggle venue status
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Venue ID"
// @Success      200  {object}  Envelope{result=domain.Venue}
// @Failure      403  {object}  Envelope
// @Router       /api/venues/{id}/toggle-status [patch]
func (h *VenueHandler) ToggleStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	venue, err := h.venues.ToggleStatus(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	msg := "Venue deactivated successfully"
	if venue.IsActive {
		msg = "Venue activated successfully"
	}
	return respond(c, http.StatusOK, msg, venue)
}

// UploadImages accepts multipart files in the "images" field. Optional form
// values: "captions" (one per file, in order) and "primaryIndex".
//
// @Summary      Upload venue images
// @Tags         venues
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true   "Venue ID"
// @Param        images        formData  file    true   "Image files"
// @Param        captions      formData  string  false  "Captions"
// @Param        primaryIndex  formData  int     false  "Index of the new primary image"
// @Success      200           {object}  Envelope{result=domain.Venue}
// @Failure      400           {object}  Envelope
// @Failure      413           {object}  Envelope
// @Failure      415           {object}  Envelope
// @Router       /api/venues/{id}/images [post]
func (h *VenueHandler) UploadImages(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return domain.NewValidationError("multipart form with images is required")
	}
	headers := form.File[venueImagesField]
	if len(headers) == 0 {
		return domain.ErrImagesRequired
	}
	captions := form.Value["captions"]
	primary := -1
	if v := form.Value["primaryIndex"]; len(v) > 0 {
		if n, err := strconv.Atoi(v[0]); err == nil {
			primary = n
		}
	}

	files := make([]ports.UploadedImage, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		img := ports.UploadedImage{
			Field:    venueImagesField,
			Filename: fh.Filename,
			Primary:  i == primary,
			Body:     f,
		}
		if i < len(captions) {
			img.Caption = captions[i]
		}
		files = append(files, img)
	}

	venue, err := h.venues.UploadImages(c.Request().Context(), actor, c.Param("id"), files)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Images uploaded successfully", venue)
}

// RemoveImage detaches one image from a venue.
//
// @Summary      Remove venue image
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Venue ID"
// @Param        imageId  path      string  true  "Image ID"
// @Success      200      {object}  Envelope{result=domain.Venue}
// @Failure      404      {object}  Envelope
// @Router       /api/venues/{id}/images/{imageId} [delete]
func (h *VenueHandler) RemoveImage(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	venue, err := h.venues.RemoveImage(c.Request().Context(), actor, c.Param("id"), c.Param("imageId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Image removed successfully", venue)
}

func queryFloat(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryOptInt(c echo.Context, name string) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
