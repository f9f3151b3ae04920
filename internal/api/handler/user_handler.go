package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

type UserHandler struct {
	accounts ports.UserAccountService
}

func NewUserHandler(accounts ports.UserAccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type updateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type passwordProofRequest struct {
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userListResponse struct {
	Users      []*domain.User `json:"users"`
	Pagination pagination     `json:"pagination"`
}

// Profile returns the signed-in user.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{result=domain.User}
// @Failure      401  {object}  Envelope
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile fetched successfully", user)
}

// UpdateProfile changes name, email or phone.
//
// @Summary      Update current user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{result=domain.User}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.UpdateProfile(c.Request().Context(), actor, domain.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}

// ChangePassword replaces the password and returns a fresh token. Tokens
// issued earlier stop working.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  Envelope{result=tokenResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/users/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	token, err := h.accounts.ChangePassword(c.Request().Context(), actor, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password changed successfully", tokenResponse{Token: token})
}

// DeleteAccount removes the signed-in user after re-checking the password.
//
// @Summary      Delete current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      passwordProofRequest  true  "Password"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/users/account [delete]
func (h *UserHandler) DeleteAccount(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Account deleted successfully", nil)
}

// List is the admin user directory.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name or email fragment"
// @Param        page    query     int     false  "Page"   default(1)
// @Param        limit   query     int     false  "Limit"  default(10)
// @Success      200     {object}  Envelope{result=userListResponse}
// @Failure      403     {object}  Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	page, err := h.accounts.List(c.Request().Context(), actor, c.QueryParam("search"), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Users fetched successfully", userListResponse{
		Users:      page.Items,
		Pagination: newPagination(page.Page, page.Limit, page.TotalPages, page.Total),
	})
}

// Get returns one user for an admin.
//
// @Summary      Get user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Envelope{result=domain.User}
// @Failure      404  {object}  Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", user)
}
