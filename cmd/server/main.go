package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "toolrent-backend/internal/api/http"
	"toolrent-backend/internal/client"
	"toolrent-backend/internal/config"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository/postgres"
	"toolrent-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	kardexSvc := service.NewKardexService(store.KardexRepository)
	inventorySvc := service.NewInventoryService(store.ToolLotRepository, kardexSvc)
	pricingSvc := service.NewPricingService(store.PricingConfigRepository)

	// The loan workflow talks to pricing over HTTP when a remote endpoint
	// is configured, otherwise it calls the in-process calculator.
	var pricingClient service.PricingClient = pricingSvc
	if cfg.Collaborators.PricingURL != "" {
		logger.Info("Using remote pricing service", "url", cfg.Collaborators.PricingURL)
		pricingClient = client.NewPricingClient(cfg.Collaborators.PricingURL, cfg.CollaboratorTimeout())
	}

	var customerDirectory service.CustomerDirectory
	if cfg.Collaborators.CustomerDirectoryURL != "" {
		logger.Info("Using remote customer directory", "url", cfg.Collaborators.CustomerDirectoryURL)
		customerDirectory = client.NewCustomerDirectoryClient(cfg.Collaborators.CustomerDirectoryURL, cfg.CollaboratorTimeout())
	}

	loanSvc := service.NewLoanService(store.LoanRepository, inventorySvc, pricingClient, customerDirectory)

	// Set up HTTP server
	router := httpapi.NewRouter(inventorySvc, loanSvc, kardexSvc, pricingSvc)
	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
