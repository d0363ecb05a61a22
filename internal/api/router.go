package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bookhaven/bookstore-api/docs"
	"github.com/bookhaven/bookstore-api/internal/api/handler"
	"github.com/bookhaven/bookstore-api/internal/api/middleware"
	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
	"github.com/bookhaven/bookstore-api/internal/core/service"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/redis"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/hash"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit receives security events for asynchronous persistence; it may be nil
// in tests.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookstore"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Redis.MaxLoginFailures)

	authService := service.NewAuthService(userRepo, hasher, tokens, throttle, audit, log)
	bookService := service.NewBookService(bookRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	identity := middleware.Identity(tokens, userRepo, audit, log)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected routes ---
	books := e.Group("/v1/books", identity, middleware.RequireAuth())
	books.POST("", bookHandler.Create)
	books.GET("", bookHandler.List)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	// Audit trail is admin-only.
	e.GET("/v1/auth/events", auditHandler.List, identity, middleware.RBAC(domain.RoleAdmin))

	return e
}
