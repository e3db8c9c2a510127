package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"barwy-shop/internal/cache"
	"barwy-shop/internal/config"
	"barwy-shop/internal/database"
	custommiddleware "barwy-shop/internal/middleware"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/seed"
	"barwy-shop/internal/service"
	"barwy-shop/internal/storage"
	"barwy-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
	seeder *seed.Seeder
}

// NewServer wires repositories, services and handlers onto a chi router.
// redisClient may be nil, in which case caching and rate limiting are off.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) (*Server, error) {
	images, err := storage.NewFileImageStore(afero.NewOsFs(), cfg.Images.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image directory: %w", err)
	}

	listCache := cache.NewNoopCache()
	if redisClient != nil {
		listCache = cache.NewRedisProductCache(redisClient, cfg.Redis.CacheTTL, logger)
	}

	// Repositories
	pool := db.DB()
	txManager := database.NewTxManager(pool)
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pool)

	// Services
	identityService := service.NewIdentityService(userRepo, roleRepo, logger)
	productService := service.NewProductService(productRepo, txManager, images, listCache, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	accountService := service.NewAccountService(identityService, userRepo, refreshTokenRepo, txManager, cfg.JWT, logger)

	router := chi.NewRouter()
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))
	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		health := db.Health(ctx)
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	imageFS := http.FileServer(afero.NewHttpFs(images.Fs()).Dir("/"))
	router.Handle("/images/*", http.StripPrefix("/images", imageFS))

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminOnly := []func(http.Handler) http.Handler{authMiddleware, custommiddleware.RequireAdmin(logger)}

	maxUpload := cfg.Images.MaxUploadMB << 20

	router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))
		r.Use(jsonBodyLimit(maxJSONBody))

		transport.NewProductHandler(productService, maxUpload, logger).RegisterRoutes(r, adminOnly...)
		transport.NewCategoryHandler(categoryService, logger).RegisterRoutes(r, adminOnly...)
		transport.NewAccountHandler(accountService, logger).RegisterRoutes(r, authMiddleware)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		seeder: seed.New(identityService, categoryRepo, productRepo, txManager, logger),
	}

	return server, nil
}

// Seed fills an empty database with the initial catalog and accounts
func (s *Server) Seed(ctx context.Context) error {
	return s.seeder.Run(ctx)
}

// jsonBodyLimit caps JSON bodies. Multipart uploads carry their own limit.
func jsonBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	limit := custommiddleware.BodyLimitMiddleware(maxBytes)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
