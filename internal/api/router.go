package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recordops/ledger-api/internal/api/handler"
	"github.com/recordops/ledger-api/internal/api/middleware"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
	"github.com/recordops/ledger-api/internal/core/service"
	mongodb "github.com/recordops/ledger-api/internal/infrastructure/db/mongo"
	redisstore "github.com/recordops/ledger-api/internal/infrastructure/db/redis"
	"github.com/recordops/ledger-api/internal/infrastructure/mail"
)

// Deps carries the shared infrastructure the router wires handlers onto.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	TokenTTL   time.Duration // zero means the service default
	BcryptCost int           // zero means the bcrypt default
	Audit      ports.AuditRecorder
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Middleware order is load-bearing: correlation runs first so every log line
// carries the request id, and the auth guard always precedes the role guard.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(middleware.Correlation())
	e.Use(echomiddleware.Recover())
	e.Use(echoprometheus.NewMiddleware("ledger"))

	// --- Dependencies ---
	tokens := service.NewTokenService(d.JWTSecret, d.TokenTTL)
	hasher := service.NewPasswordHasher(d.BcryptCost)
	users := mongodb.NewUserRepository(d.Mongo)
	txRepo := mongodb.NewTransactionRepository(d.Mongo)
	recovery := redisstore.NewRecoveryStore(d.Redis)
	mailer := mail.NewLogMailer(d.Log)

	authService := service.NewAuthService(users, tokens, hasher, recovery, d.Audit, d.Log)
	userService := service.NewUserService(users, hasher, recovery, mailer, d.Audit, d.Log)
	txService := service.NewTransactionService(txRepo, d.Log)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	txHandler := handler.NewTransactionHandler(txService)

	authn := middleware.Auth(tokens, users)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/status", authHandler.Status, authn)
	e.PATCH("/auth/recovery-password", authHandler.RecoverPassword)

	// --- User management ---
	u := e.Group("/users", authn)
	u.POST("", userHandler.Create, adminOnly)
	u.GET("", userHandler.List, adminOnly)
	u.GET("/active", userHandler.ListActive, adminOnly)
	u.GET("/:id", userHandler.Get)
	u.PATCH("/:id", userHandler.Update)
	u.DELETE("/:id", userHandler.Delete)

	// --- Transactions ---
	t := e.Group("/transactions", authn)
	t.POST("", txHandler.Create)
	t.GET("", txHandler.List)
	t.GET("/:id", txHandler.Get)
	t.PATCH("/:id", txHandler.Update)
	t.DELETE("/:id", txHandler.Deactivate)

	// --- Audit trail (admins only) ---
	auditHandler := handler.NewAuditHandler(mongodb.NewAuditRepository(d.Mongo))
	a := e.Group("/audit-logs", authn, adminOnly)
	a.GET("", auditHandler.List)
	a.GET("/:id", auditHandler.Get)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
