package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/api"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
)

// Options carries the optional backends. A nil Redis disables rate
// limiting and nil Images disables image uploads.
type Options struct {
	Redis  *redis.Client
	Images storage.ImagePresigner
	Logger *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	gin.SetMode(cfg.Environment.GinMode())

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	if cfg.JWTSecret != "" {
		router.Use(middleware.Identity(middleware.NewHMACValidator(cfg.JWTSecret)))
	}

	var limiter *middleware.RateLimiter
	if opts.Redis != nil {
		limiter = middleware.NewRecipeWriteRateLimiter(opts.Redis, cfg.RateLimitWindow, cfg.RateLimitRequests)
	}

	api.RegisterRoutes(router, api.Dependencies{
		DB:          db,
		Recipes:     service.NewRecipeService(db, service.WithMaxPageSize(cfg.MaxPageSize)),
		Tags:        service.NewTagService(db),
		Equipment:   service.NewEquipmentService(db),
		Images:      opts.Images,
		RateLimiter: limiter,
	})

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the HTTP handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Info("Starting server", slog.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
