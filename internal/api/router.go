package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/venuehub/booking-api/docs"
	"github.com/venuehub/booking-api/internal/api/handler"
	"github.com/venuehub/booking-api/internal/api/middleware"
	"github.com/venuehub/booking-api/internal/core/ports"
	"github.com/venuehub/booking-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Registerer and Gatherer default
// to the global Prometheus registry.
type Deps struct {
	Logger zerolog.Logger

	Auth       ports.AuthService
	Users      ports.UserAccountService
	Providers  ports.ProviderAccountService
	Venues     ports.VenueService
	Categories ports.CategoryService
	Offerings  ports.OfferingService

	Guard  middleware.GuardConfig
	Health *handlers.HealthHandler

	UploadDir string
	BodyLimit string

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORS())
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Platform ---
	if d.Health != nil {
		e.GET("/health", d.Health.Liveness)        // liveness  – is the process alive?
		e.GET("/health/ready", d.Health.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Group("/uploads", middleware.UploadHeaders()).Static("/", d.UploadDir)
	}

	guard := middleware.Auth(d.Guard)
	admin := middleware.RequireAdmin()
	provider := middleware.RequireProvider()

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	providerHandler := handler.NewProviderHandler(d.Providers)
	venueHandler := handler.NewVenueHandler(d.Venues)
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	offeringHandler := handler.NewOfferingHandler(d.Offerings)

	api := e.Group("/api")

	// --- Users ---
	users := api.Group("/users")
	users.POST("/register", authHandler.RegisterUser)
	users.POST("/login", authHandler.LoginUser)
	users.POST("/logout", authHandler.Logout, guard)
	users.GET("/profile", userHandler.Profile, guard)
	users.PUT("/profile", userHandler.UpdateProfile, guard)
	users.PUT("/change-password", userHandler.ChangePassword, guard)
	users.DELETE("/account", userHandler.DeleteAccount, guard)
	users.GET("", userHandler.List, guard, admin)
	users.GET("/:id", userHandler.Get, guard, admin)

	// --- Providers ---
	providers := api.Group("/providers")
	providers.POST("/register", authHandler.RegisterProvider)
	providers.POST("/login", authHandler.LoginProvider)
	providers.POST("/logout", authHandler.Logout, guard, provider)
	providers.GET("", providerHandler.List)
	providers.GET("/profile/me", providerHandler.Profile, guard, provider)
	providers.PUT("/profile/update", providerHandler.UpdateProfile, guard, provider)
	providers.POST("/documents", providerHandler.AddDocuments, guard, provider)
	providers.DELETE("/profile/delete", providerHandler.DeleteAccount, guard, provider)
	providers.PUT("/:id/status", providerHandler.UpdateStatus, guard, admin)
	providers.GET("/:id", providerHandler.Get)

	// --- Venues ---
	venues := api.Group("/venues")
	venues.GET("", venueHandler.List)
	venues.GET("/mine", venueHandler.Mine, guard, provider)
	venues.GET("/:id", venueHandler.Get)
	venues.POST("", venueHandler.Create, guard, provider)
	venues.PUT("/:id", venueHandler.Update, guard, provider)
	venues.DELETE("/:id", venueHandler.Delete, guard, provider)
	venues.PATCH("/:id/toggle-status", venueHandler.ToggleStatus, guard, provider)
	venues.POST("/:id/images", venueHandler.UploadImages, guard, provider)
	venues.DELETE("/:id/images/:imageId", venueHandler.RemoveImage, guard, provider)

	// --- Categories ---
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, guard, admin)
	categories.PUT("/:id/status", categoryHandler.SetStatus, guard, admin)
	categories.DELETE("/:id", categoryHandler.Delete, guard, admin)

	// --- Services ---
	services := api.Group("/services")
	services.GET("", offeringHandler.List)
	services.GET("/mine", offeringHandler.Mine, guard, provider)
	services.GET("/venue/:venueId", offeringHandler.ByVenue)
	services.GET("/:id", offeringHandler.Get)
	services.POST("", offeringHandler.Create, guard, provider)
	services.PUT("/:id", offeringHandler.Update, guard, provider)
	services.DELETE("/:id", offeringHandler.Delete, guard, provider)
	services.PATCH("/:id/toggle-status", offeringHandler.ToggleStatus, guard, provider)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
