package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/domain"
	"product-catalog/internal/logger"
	"product-catalog/internal/repository"
	"product-catalog/internal/server"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting product catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	repo := repository.NewMemoryRepository()
	seedCatalog(repo, log)

	srv := server.NewServer(cfg, log, repo)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}

// seedCatalog loads a small demo dataset so a fresh instance has
// something to serve.
func seedCatalog(repo repository.ProductRepository, log *zap.Logger) {
	products := []domain.Product{
		{Name: "Laptop", Description: "High-performance laptop with 16GB RAM", Price: 1200, Category: "Electronics", InStock: true},
		{Name: "Smartphone", Description: "Latest model with 128GB storage", Price: 800, Category: "Electronics", InStock: true},
		{Name: "Coffee Maker", Description: "Programmable coffee maker with timer", Price: 50, Category: "Home Appliances", InStock: false},
	}

	ctx := context.Background()
	for i := range products {
		if err := repo.Insert(ctx, &products[i]); err != nil {
			log.Warn("Failed to seed product", zap.String("name", products[i].Name), zap.Error(err))
		}
	}

	log.Info("Seeded demo catalog", zap.Int("products", len(products)))
}
