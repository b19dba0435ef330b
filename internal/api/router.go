package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identity-core/auth-service/docs"
	"github.com/identity-core/auth-service/internal/api/handler"
	"github.com/identity-core/auth-service/internal/api/middleware"
	"github.com/identity-core/auth-service/internal/core/domain"
	"github.com/identity-core/auth-service/internal/core/service"
	mongodb "github.com/identity-core/auth-service/internal/infrastructure/db/mongo"
	"github.com/identity-core/auth-service/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, engine *token.Engine, adminKey string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, engine, adminKey, log)
	authHandler := handler.NewAuthHandler(authService)
	testHandler := handler.NewTestHandler()

	authenticated := middleware.Auth(engine)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/signup", authHandler.SignUp)
	e.POST("/admin/signup", authHandler.AdminSignUp)
	e.POST("/login", authHandler.Login)

	// --- Protected routes ---
	e.PATCH("/admin/users/:user_id/roles", authHandler.SwitchRole, authenticated, adminOnly)
	e.GET("/api/test", testHandler.Authenticated, authenticated)
	e.GET("/api/test/admin", testHandler.AdminOnly, authenticated, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
