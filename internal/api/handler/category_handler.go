package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type categoryStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// List returns categories, optionally filtered by ?active=true|false.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        active  query     bool  false  "Active flag"
// @Success      200     {object}  Envelope{result=[]domain.Category}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			active = &b
		}
	}
	categories, err := h.categories.List(c.Request().Context(), active)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Categories fetched successfully", categories)
}

// Get returns one category.
//
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  Envelope{result=domain.Category}
// @Failure      404  {object}  Envelope
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category fetched successfully", category)
}

// Create adds a category.
//
// @Summary      Create category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  Envelope{result=domain.Category}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.categories.Create(c.Request().Context(), actor, domain.Category{
		Name:        domain.CategoryName(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Category created successfully", category)
}

// SetStatus activates or deactivates a category.
//
// @Summary      Set category status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      categoryStatusRequest  true  "Flag"
// @Success      200   {object}  Envelope{result=domain.Category}
// @Failure      404   {object}  Envelope
// @Router       /api/categories/{id}/status [put]
func (h *CategoryHandler) SetStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req categoryStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.categories.SetActive(c.Request().Context(), actor, c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category status updated successfully", category)
}

// Delete removes a category.
//
// @Summary      Delete category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}
