package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifetrack/stress-tracking-api/internal/api/handler"
	"github.com/lifetrack/stress-tracking-api/internal/api/middleware"
	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
	"github.com/lifetrack/stress-tracking-api/internal/infrastructure/http/handlers"
)

// Deps carries the already-constructed services and stores the router wires up.
type Deps struct {
	AuthService  ports.AuthService
	EntryService ports.EntryService
	Mongo        *mongo.Database
	Redis        *redis.Client
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("stresstrack_http"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	entryHandler := handler.NewEntryHandler(deps.EntryService)
	authMiddleware := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Entry routes (all authenticated) ---
	entries := e.Group("/v1/entries", authMiddleware)
	entries.POST("", entryHandler.Create)
	entries.GET("", entryHandler.List)
	entries.GET("/:id", entryHandler.Get)
	entries.PUT("/:id", entryHandler.Update)
	entries.DELETE("/:id", entryHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
