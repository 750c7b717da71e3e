package server

import (
	"fmt"
	"net/http"
	"time"

	"product-catalog/internal/config"
	custommiddleware "product-catalog/internal/middleware"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"
	"product-catalog/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
}

// NewServer assembles the router, the middleware stack and the
// repo -> service -> handler wiring around the given repository.
func NewServer(cfg *config.Config, logger *zap.Logger, repo repository.ProductRepository) *Server {
	router := NewRouter(cfg, logger, repo)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
	}
}

// NewRouter builds the full handler tree. Split out from NewServer so
// tests can drive it through httptest.
func NewRouter(cfg *config.Config, logger *zap.Logger, repo repository.ProductRepository) http.Handler {
	router := chi.NewRouter()

	isDevelopment := cfg.Server.Env == "development"

	// Basic middleware stack
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, isDevelopment))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if cfg.RateLimit.RequestsPerWindow > 0 {
		limiter := custommiddleware.NewRateLimiter(custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		}, logger)
		router.Use(limiter.Middleware)
	}

	// Informational root, not part of the resource API
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Welcome to the Product Catalog API",
			"endpoints": map[string]string{
				"products": "/api/products",
				"search":   "/api/products/search?q=",
				"stats":    "/api/products/stats",
				"health":   "/health",
			},
		})
	})

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	productService := service.NewProductService(repo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)

	// The gate applies to mutating verbs only
	authMiddleware := custommiddleware.APIKeyAuth(cfg.Auth.APIKey, logger)

	// Register routes
	productHandler.RegisterRoutes(router, authMiddleware)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")
	s.logger.Sync()
	return nil
}
