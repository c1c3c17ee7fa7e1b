package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/foodrankr/backend/internal/api/handler"
	"github.com/foodrankr/backend/internal/api/middleware"
	"github.com/foodrankr/backend/internal/core/ports"
)

// Deps carries everything the router needs to mount the API.
type Deps struct {
	Log            zerolog.Logger
	AllowedOrigins []string
	// Metrics receives the HTTP request collectors. Nil means the default
	// Prometheus registry, where the domain counters also live.
	Metrics        *prometheus.Registry

	Identity  ports.IdentityResolver
	Auth      ports.AuthService
	Companies ports.CompanyService
	Profiles  ports.ProfileService
	Ranks     ports.RankService
	Stats     ports.StatsService

	// Probe handlers; a nil handler leaves its route unmounted.
	Root      echo.HandlerFunc
	Liveness  echo.HandlerFunc
	Readiness echo.HandlerFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "foodrankr",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	companyHandler := handler.NewCompanyHandler(d.Companies)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	rankHandler := handler.NewRankHandler(d.Ranks)
	statsHandler := handler.NewStatsHandler(d.Stats)

	authenticate := middleware.Authenticate(d.Identity)
	requireAdmin := middleware.RequireAdmin()

	// --- Probes and tooling (no auth required) ---
	if d.Root != nil {
		e.GET("/", d.Root)
	}
	if d.Liveness != nil {
		e.GET("/health", d.Liveness)
	}
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authenticate)

	// --- Companies ---
	e.GET("/companies", companyHandler.List)
	e.POST("/companies", companyHandler.Create, authenticate)

	// --- Profile ---
	e.GET("/user/profile", profileHandler.Get, authenticate)
	e.PUT("/user/profile", profileHandler.Update, authenticate)

	// --- Ranks ---
	e.GET("/ranks", rankHandler.List)
	e.POST("/ranks", rankHandler.Create, authenticate)

	// --- Admin ---
	admin := e.Group("/admin", authenticate, requireAdmin)
	admin.POST("/companies/approve", companyHandler.Approve)
	admin.GET("/company-requests", companyHandler.ListRequests)
	admin.POST("/company-requests/approve", companyHandler.ApproveRequest)
	admin.GET("/stats", statsHandler.Get)

	return e
}
