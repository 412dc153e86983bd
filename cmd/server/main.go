// Package main initializes and starts the dealership HTTP server,
// setting up configuration, logging, database connections, repositories,
// services, sessions, and handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/db"
	"github.com/dealerdesk/dealerdesk/internal/logger"
	"github.com/dealerdesk/dealerdesk/internal/repository"
	"github.com/dealerdesk/dealerdesk/internal/server/handler/http"
	"github.com/dealerdesk/dealerdesk/internal/service"
	"github.com/dealerdesk/dealerdesk/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s if it is non-empty, otherwise def.
// It mirrors cmp.Or for strings, which needs Go 1.22+.
func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Seed the brand and model catalog (idempotent).
	if err := db.SeedCatalog(context.Background(), postgresDB, zapLogger); err != nil {
		zapLogger.Fatal("cannot seed catalog", zap.Error(err))
	}

	// Initialize the session store and its expiry sweeper.
	sessionTTL := time.Duration(options.SessionTTLHours) * time.Hour
	sessions := session.NewStore(sessionTTL)
	session.StartCleaner(context.Background(), sessions,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for users and inventory.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	inventoryRepo := repository.NewPostgresInventoryRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, zapLogger)

	// Create HTTP handlers for auth and inventory endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessions}
	inventoryHandler := &http.InventoryHandler{InventoryService: inventoryService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, inventoryHandler, sessions, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
