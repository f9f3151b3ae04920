package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// OfferingHandler serves the /api/services catalog.
type OfferingHandler struct {
	offerings ports.OfferingService
}

func NewOfferingHandler(offerings ports.OfferingService) *OfferingHandler {
	return &OfferingHandler{offerings: offerings}
}

type createOfferingRequest struct {
	VenueID     string   `json:"venueId" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty" validate:"max=1000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Duration    string   `json:"duration,omitempty"`
	Inclusions  []string `json:"inclusions,omitempty"`
}

type updateOfferingRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration,omitempty"`
	Inclusions  []string `json:"inclusions,omitempty"`
}

func (r updateOfferingRequest) toDomain() domain.OfferingUpdate {
	u := domain.OfferingUpdate{
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Inclusions:  r.Inclusions,
	}
	if r.Name != nil {
		n := domain.OfferingName(*r.Name)
		u.Name = &n
	}
	return u
}

type offeringListResponse struct {
	Services   []*domain.Offering `json:"services"`
	Pagination pagination         `json:"pagination"`
}

func offeringFilterFrom(c echo.Context) domain.OfferingFilter {
	return domain.OfferingFilter{
		VenueID:  c.QueryParam("venueId"),
		Name:     c.QueryParam("name"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}
}

// List is the public catalog of active services.
//
// @Summary      Browse services
// @Tags         services
// @Produce      json
// @Param        venueId   query     string  false  "Venue ID"
// @Param        name      query     string  false  "Event type"
// @Param        minPrice  query     number  false  "Minimum price"
// @Param        maxPrice  query     number  false  "Maximum price"
// @Param        page      query     int     false  "Page"   default(1)
// @Param        limit     query     int     false  "Limit"  default(10)
// @Success      200       {object}  Envelope{result=offeringListResponse}
// @Router       /api/services [get]
func (h *OfferingHandler) List(c echo.Context) error {
	page, err := h.offerings.ListPublic(c.Request().Context(), offeringFilterFrom(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Services fetched successfully", offeringListResponse{
		Services:   page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Get returns one service.
//
// @Summary      Get service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  Envelope{result=domain.Offering}
// @Failure      404  {object}  Envelope
// @Router       /api/services/{id} [get]
func (h *OfferingHandler) Get(c echo.Context) error {
	offering, err := h.offerings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Service fetched successfully", offering)
}

// ByVenue lists a venue's services. Only ?isActive=false selects inactive ones.
//
// @Summary      Services of a venue
// @Tags         services
// @Produce      json
// @Param        venueId   path      string  true   "Venue ID"
// @Param        isActive  query     bool    false  "Active flag"  default(true)
// @Success      200       {object}  Envelope{result=[]domain.Offering}
// @Failure      404       {object}  Envelope
// @Router       /api/services/venue/{venueId} [get]
func (h *OfferingHandler) ByVenue(c echo.Context) error {
	active := c.QueryParam("isActive") != "false"
	offerings, err := h.offerings.ListByVenue(c.Request().Context(), c.Param("venueId"), active)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Services fetched successfully", offerings)
}

// Mine lists services across the signed-in provider's venues.
//
// @Summary      My services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        venueId   query     string  false  "Venue ID"
// @Param        name      query     string  false  "Event type"
// @Param        isActive  query     bool    false  "Active flag; all when absent"
// @Param        page      query     int     false  "Page"   default(1)
// @Param        limit     query     int     false  "Limit"  default(10)
// @Success      200       {object}  Envelope{result=offeringListResponse}
// @Router       /api/services/mine [get]
func (h *OfferingHandler) Mine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	filter := offeringFilterFrom(c)
	if raw := c.QueryParam("isActive"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}
	page, err := h.offerings.ListMine(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Services fetched successfully", offeringListResponse{
		Services:   page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Create adds a service to a venue the provider owns.
//
// @Summary      Create service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOfferingRequest  true  "Service"
// @Success      201   {object}  Envelope{result=domain.Offering}
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/services [post]
func (h *OfferingHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createOfferingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	offering, err := h.offerings.Create(c.Request().Context(), actor, ports.CreateOfferingInput{
		VenueID:     req.VenueID,
		Name:        domain.OfferingName(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Inclusions:  req.Inclusions,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Service created successfully", offering)
}

// Update edits a service the provider owns.
//
// @Summary      Update service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Service ID"
// @Param        body  body      updateOfferingRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{result=domain.Offering}
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/services/{id} [put]
func (h *OfferingHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateOfferingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	offering, err := h.offerings.Update(c.Request().Context(), actor, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Service updated successfully", offering)
}

// Delete removes a service the provider owns.
//
// @Summary      Delete service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/services/{id} [delete]
func (h *OfferingHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.offerings.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Service deleted successfully", nil)
}

// ToggleStatus flips a service between active and inactive.
//
// @Summary      Toggle service status
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  Envelope{result=domain.Offering}
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/services/{id}/toggle-status [patch]
func (h *OfferingHandler) ToggleStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	offering, err := h.offerings.ToggleStatus(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	msg := "Service deactivated successfully"
	if offering.IsActive {
		msg = "Service activated successfully"
	}
	return respond(c, http.StatusOK, msg, offering)
}
