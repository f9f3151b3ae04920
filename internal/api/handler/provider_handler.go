package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

type ProviderHandler struct {
	accounts ports.ProviderAccountService
}

func NewProviderHandler(accounts ports.ProviderAccountService) *ProviderHandler {
	return &ProviderHandler{accounts: accounts}
}

type updateProviderRequest struct {
	FirstName    *string         `json:"firstName,omitempty"`
	MiddleName   *string         `json:"middleName,omitempty"`
	LastName     *string         `json:"lastName,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	BusinessName *string         `json:"businessName,omitempty"`
	BusinessType *string         `json:"businessType,omitempty" validate:"omitempty,oneof=party-plot banquet-hall farmhouse resort hotel other"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Website      *string         `json:"website,omitempty"`
	Address      *addressRequest `json:"address,omitempty"`
	ProfileImage *string         `json:"profileImage,omitempty"`
	CoverImage   *string         `json:"coverImage,omitempty"`
}

func (r updateProviderRequest) toDomain() domain.ProviderUpdate {
	u := domain.ProviderUpdate{
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		BusinessName: r.BusinessName,
		Description:  r.Description,
		Website:      r.Website,
		ProfileImage: r.ProfileImage,
		CoverImage:   r.CoverImage,
	}
	if r.BusinessType != nil {
		bt := domain.BusinessType(*r.BusinessType)
		u.BusinessType = &bt
	}
	if r.Address != nil {
		a := r.Address.toDomain()
		u.Address = &a
	}
	return u
}

type documentRequest struct {
	Type string `json:"type" validate:"required,oneof=license identity other"`
	URL  string `json:"url" validate:"required"`
}

type addDocumentsRequest struct {
	Documents []documentRequest `json:"documents" validate:"required,min=1,dive"`
}

type providerStatusRequest struct {
	IsApproved *bool `json:"isApproved,omitempty"`
	IsActive   *bool `json:"isActive,omitempty"`
}

type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

type providerListResponse struct {
	Providers  []*domain.Provider `json:"providers"`
	Pagination pagination         `json:"pagination"`
}

// List is the public provider catalog: approved and active providers only.
//
// @Summary      Browse providers
// @Tags         providers
// @Produce      json
// @Param        businessType  query     string  false  "Business type"
// @Param        city          query     string  false  "City"
// @Param        state         query     string  false  "State"
// @Param        search        query     string  false  "Business name fragment"
// @Param        page          query     int     false  "Page"   default(1)
// @Param        limit         query     int     false  "Limit"  default(10)
// @Success      200           {object}  Envelope{result=providerListResponse}
// @Router       /api/providers [get]
func (h *ProviderHandler) List(c echo.Context) error {
	page, err := h.accounts.ListPublic(c.Request().Context(), domain.ProviderFilter{
		BusinessType: c.QueryParam("businessType"),
		City:         c.QueryParam("city"),
		State:        c.QueryParam("state"),
		Search:       c.QueryParam("search"),
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Providers fetched successfully", providerListResponse{
		Providers:  page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Get returns one approved, active provider.
//
// @Summary      Get provider
// @Tags         providers
// @Produce      json
// @Param        id   path      string  true  "Provider ID"
// @Success      200  {object}  Envelope{result=domain.Provider}
// @Failure      404  {object}  Envelope
// @Router       /api/providers/{id} [get]
func (h *ProviderHandler) Get(c echo.Context) error {
	provider, err := h.accounts.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Provider fetched successfully", provider)
}

// Profile returns the signed-in provider.
//
// @Summary      Current provider profile
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{result=domain.Provider}
// @Failure      403  {object}  Envelope
// @Router       /api/providers/profile/me [get]
func (h *ProviderHandler) Profile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	provider, err := h.accounts.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile fetched successfully", provider)
}

// UpdateProfile edits business details. Email, password and approval flags
// are not accepted here.
//
// @Summary      Update provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProviderRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{result=domain.Provider}
// @Failure      400   {object}  Envelope
// @Router       /api/providers/profile/update [put]
func (h *ProviderHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateProviderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	provider, err := h.accounts.UpdateProfile(c.Request().Context(), actor, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", provider)
}

// AddDocuments appends verification documents.
//
// @Summary      Upload provider documents
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addDocumentsRequest  true  "Documents"
// @Success      200   {object}  Envelope{result=documentsResponse}
// @Failure      400   {object}  Envelope
// @Router       /api/providers/documents [post]
func (h *ProviderHandler) AddDocuments(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req addDocumentsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	docs := make([]domain.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, domain.Document{Type: domain.DocumentType(d.Type), URL: d.URL})
	}
	stored, err := h.accounts.AddDocuments(c.Request().Context(), actor, docs)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Documents uploaded successfully", documentsResponse{Documents: stored})
}

// DeleteAccount removes the signed-in provider after re-checking the password.
//
// @Summary      Delete provider account
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      passwordProofRequest  true  "Password"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/providers/profile/delete [delete]
func (h *ProviderHandler) DeleteAccount(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req passwordProofRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.accounts.DeleteAccount(c.Request().Context(), actor, req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Provider account deleted successfully", nil)
}

// UpdateStatus approves or (de)activates a provider.
//
// @Summary      Set provider status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Provider ID"
// @Param        body  body      providerStatusRequest  true  "Flags"
// @Success      200   {object}  Envelope{result=domain.Provider}
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/providers/{id}/status [put]
func (h *ProviderHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req providerStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	provider, err := h.accounts.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ProviderStatus{
		IsApproved: req.IsApproved,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Provider status updated successfully", provider)
}
