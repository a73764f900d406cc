package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/phoenix-council/election-api/docs"
	"github.com/phoenix-council/election-api/internal/api/handler"
	"github.com/phoenix-council/election-api/internal/api/middleware"
	"github.com/phoenix-council/election-api/internal/core/domain"
	"github.com/phoenix-council/election-api/internal/core/ports"
	"github.com/phoenix-council/election-api/internal/core/service"
	"github.com/phoenix-council/election-api/internal/infrastructure/config"
	mongodb "github.com/phoenix-council/election-api/internal/infrastructure/db/mongo"
	redisdb "github.com/phoenix-council/election-api/internal/infrastructure/db/redis"
	"github.com/phoenix-council/election-api/internal/infrastructure/identity"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. audit may be nil to disable the asynchronous audit trail
// (tests).
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	audit ports.AuditSink,
	reconciler handler.ReconcileRunner,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("election"))

	// --- Repositories ---
	ballotRepo := mongodb.NewBallotRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	statusRepo := mongodb.NewStatusRepository(db)
	rosterRepo := mongodb.NewRosterRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)

	// --- Services ---
	verifier := identity.NewAssertionVerifier(cfg.Identity.AssertionSecret)
	voteService := service.NewVoteService(
		ballotRepo, sessionRepo, statusRepo, rosterRepo, audit,
		cfg.Election.CouncilSize, cfg.Election.ExecutiveSize, log,
	)
	resultsService := service.NewResultsService(ballotRepo, statusRepo, rosterRepo, log)
	sessionService := service.NewSessionService(
		sessionRepo, verifier, cfg.Admin.Emails, cfg.JWTSecret, 0, log,
	)
	tokenService := service.NewTokenService(
		tokenStore, ballotRepo, statusRepo, cfg.Election.TokenTTL, log,
	)
	adminService := service.NewAdminService(
		statusRepo, ballotRepo, rosterRepo,
		cfg.Admin.PasswordHash, cfg.JWTSecret, 0,
		cfg.Election.CouncilSize, cfg.Election.ExecutiveSize, log,
	)

	// --- Handlers ---
	voteHandler := handler.NewVoteHandler(voteService)
	resultsHandler := handler.NewResultsHandler(resultsService, rosterRepo)
	tokenHandler := handler.NewTokenHandler(tokenService)
	authHandler := handler.NewAuthHandler(sessionService)
	adminHandler := handler.NewAdminHandler(adminService, reconciler)

	authRequired := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.OptionalAuth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/api/candidates", resultsHandler.Candidates)
	e.GET("/api/results", resultsHandler.Results)
	e.POST("/api/votes/request-id", tokenHandler.Request)
	e.POST("/api/votes/verify-id", tokenHandler.Verify)
	e.POST("/api/votes/submit", voteHandler.Submit, authOptional)

	// --- Session routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/demo", authHandler.DemoLogin)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session, authRequired)

	// --- Admin routes (protected variant only) ---
	e.POST("/api/admin/auth", adminHandler.Auth)
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.GET("/status", adminHandler.Status)
	admin.POST("/toggle", adminHandler.Toggle)
	admin.GET("/export", adminHandler.Export)
	admin.GET("/export-csv", adminHandler.ExportCSV)
	admin.POST("/reconcile", adminHandler.Reconcile)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
