// Package server contains the HTTP handlers for the friend-graph API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"friendgraph/internal/config"
	"friendgraph/internal/database"
	"friendgraph/internal/middleware"
	"friendgraph/internal/models"
	"friendgraph/internal/observability"
	"friendgraph/internal/ratelimit"
	"friendgraph/internal/repository"
	"friendgraph/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	store          repository.Store
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userService    *service.UserService
	friendService  *service.FriendService
	statsService   *service.StatsService
}

// NewServer connects to the database and Redis and builds a server around them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := ratelimit.NewClient(context.Background(), cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case rate limiting fails open.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}

	store := repository.NewStore(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          store,
		promMiddleware: middleware.InitMetrics("friendgraph-api"),
		userService:    service.NewUserService(store),
		friendService:  service.NewFriendService(store.Friends()),
		statsService:   service.NewStatsService(store.Users(), store.Friends()),
	}, nil
}

// NewApp builds the fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Friends List API",
		ErrorHandler: errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	observability.Logger.ErrorContext(c.UserContext(), "Unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewUnknownError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(middleware.TracingMiddleware())

	// Runs after requestid and tracing so their locals are populated.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := strings.Join(s.config.Origins(), ",")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		ExposeHeaders:    "Content-Length,X-Kuma-Revision",
		AllowCredentials: origins != "*",
		MaxAge:           600,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	limit := middleware.RateLimit(s.redis, middleware.RateLimitConfig{
		Env:    s.config.Env,
		Limit:  s.config.RateLimitPerMinute,
		Window: time.Minute,
		Name:   "write",
	})

	users := app.Group("/users")
	users.Post("/", limit, s.CreateUser)
	users.Get("/", s.ListUsers)
	// Specific routes before the generic /:id
	users.Get("/search", s.SearchUsers)
	users.Post("/:id/friends", limit, s.AddFriend)
	users.Get("/:id/friends", s.ListFriends)
	users.Delete("/:id/friends/:friendId", limit, s.RemoveFriend)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", limit, s.DeleteUser)

	app.Get("/stats", s.GetStats)
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.SendString("Friends List API")
}

// HealthCheck pings the store and, when configured, Redis. Only the store is
// required for a healthy response.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "ok"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

// Start builds the app and listens on the configured port. It blocks until
// the listener stops.
func (s *Server) Start() error {
	app := s.NewApp()
	observability.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP listener and closes the database and Redis handles.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error

	if s.app != nil {
		err = multierr.Append(err, s.app.ShutdownWithContext(ctx))
	}

	err = multierr.Append(err, database.Close(s.db))

	if s.redis != nil {
		err = multierr.Append(err, s.redis.Close())
	}

	if err != nil {
		observability.Logger.Error("Server shutdown finished with errors", slog.String("error", err.Error()))
		return err
	}
	observability.Logger.Info("Server shutdown complete")
	return nil
}
