package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerUserRequest struct {
	FirstName  string `json:"firstName" validate:"required,min=2"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

func (r registerUserRequest) identity() domain.Identity {
	return domain.Identity{
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Password:   r.Password,
	}
}

type addressRequest struct {
	Street  string `json:"street,omitempty"`
	Area    string `json:"area,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

func (a addressRequest) toDomain() domain.Address {
	return domain.Address{Street: a.Street, Area: a.Area, City: a.City, State: a.State, Pincode: a.Pincode}
}

type registerProviderRequest struct {
	FirstName    string         `json:"firstName" validate:"required,min=2"`
	MiddleName   string         `json:"middleName,omitempty"`
	LastName     string         `json:"lastName" validate:"required,min=2"`
	Email        string         `json:"email" validate:"required,email"`
	Phone        string         `json:"phone" validate:"required"`
	Password     string         `json:"password" validate:"required,min=6,max=72"`
	BusinessName string         `json:"businessName" validate:"required"`
	BusinessType string         `json:"businessType" validate:"required,oneof=party-plot banquet-hall farmhouse resort hotel other"`
	Description  string         `json:"description,omitempty" validate:"max=500"`
	Website      string         `json:"website,omitempty"`
	Address      addressRequest `json:"address"`
	ProfileImage string         `json:"profileImage,omitempty"`
	CoverImage   string         `json:"coverImage,omitempty"`
}

func (r registerProviderRequest) identity() domain.Identity {
	return domain.Identity{
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Password:   r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userSessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type providerSessionResponse struct {
	Provider *domain.Provider `json:"provider"`
	Token    string           `json:"token"`
}

// RegisterUser creates a customer account and signs it in.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Registration details"
// @Success      201   {object}  Envelope{result=userSessionResponse}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/users/register [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.RegisterUser(c.Request().Context(), domain.UserRegistration{Identity: req.identity()})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User registered successfully", userSessionResponse{User: session.User, Token: session.Token})
}

// LoginUser exchanges credentials for a bearer token.
//
// @Summary      User login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  Envelope{result=userSessionResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/users/login [post]
func (h *AuthHandler) LoginUser(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.LoginUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Login successful", userSessionResponse{User: session.User, Token: session.Token})
}

// RegisterProvider creates a provider account pending admin approval.
//
// @Summary      Register a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        body  body      registerProviderRequest  true  "Registration details"
// @Success      201   {object}  Envelope{result=providerSessionResponse}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/providers/register [post]
func (h *AuthHandler) RegisterProvider(c echo.Context) error {
	var req registerProviderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.RegisterProvider(c.Request().Context(), domain.ProviderRegistration{
		Identity:     req.identity(),
		BusinessName: req.BusinessName,
		BusinessType: domain.BusinessType(req.BusinessType),
		Description:  req.Description,
		Website:      req.Website,
		Address:      req.Address.toDomain(),
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Provider registered successfully. Awaiting admin approval.",
		providerSessionResponse{Provider: session.Provider, Token: session.Token})
}

// LoginProvider exchanges credentials for a bearer token. Only active,
// approved providers succeed.
//
// @Summary      Provider login
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  Envelope{result=providerSessionResponse}
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /api/providers/login [post]
func (h *AuthHandler) LoginProvider(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.LoginProvider(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Login successful", providerSessionResponse{Provider: session.Provider, Token: session.Token})
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Router       /api/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), actor.Claims); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}
