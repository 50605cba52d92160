package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/api"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/catalog"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/config"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/database"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/progress"
	"github.com/sirupsen/logrus"
)

func main() {
	// Command line flags
	configFlag := flag.String("config", "", "Path to configuration file (YAML)")
	portFlag := flag.String("port", "", "HTTP server port (overrides config)")
	dbPathFlag := flag.String("db", "", "Database file path (overrides config)")
	flag.Parse()

	var cfg *config.Config
	var err error

	// Load config file if provided
	if *configFlag != "" {
		cfg, err = config.LoadConfig(*configFlag)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
	} else {
		cfg = config.Default()
	}

	// Environment settings (API_KEY, PORT, DATABASE_PATH) override the file
	if err := cfg.ApplyEnv(); err != nil {
		logrus.Fatalf("Failed to apply environment settings: %v", err)
	}

	// Override with command line flags
	if *portFlag != "" {
		port, err := strconv.Atoi(*portFlag)
		if err != nil {
			logrus.Fatalf("Invalid port: %v", err)
		}
		cfg.Server.HTTP.Port = port
	}
	if *dbPathFlag != "" {
		cfg.Server.Database.Path = *dbPathFlag
	}

	// Setup logger with configured level
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(config.ParseLogLevel(cfg.LogLevel))
	logrus.SetOutput(os.Stdout)

	logrus.WithFields(logrus.Fields{
		"log_level": cfg.LogLevel,
		"port":      cfg.Server.HTTP.Port,
	}).Info("Starting onboarding agent API")

	// Initialize database and seed catalog data
	logrus.Infof("Initializing database at %s", cfg.Server.Database.Path)
	db, err := database.New(cfg.Server.Database.Path)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		logrus.Fatalf("Failed to seed catalog data: %v", err)
	}

	// Wire the core: catalog reads, progress tracker over the completion store
	cat := catalog.New(db)
	tracker := progress.New(cat, db)

	// Create Chi router
	router := chi.NewMux()
	router.Use(api.RequestID)
	router.Use(api.RequestLogger)
	router.Use(api.APIKeyAuth(cfg.Auth.APIKey))
	router.NotFound(api.NotFoundHandler)
	router.MethodNotAllowed(api.MethodNotAllowedHandler)

	// Create Huma API
	humaAPI := humachi.New(router, huma.DefaultConfig("Onboarding Agent API", "1.0.0"))

	// Register routes
	apiServer := api.NewServer(cat, tracker, db)
	apiServer.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting HTTP server on port %d", cfg.Server.HTTP.Port)
		logrus.Infof("API documentation available at http://localhost:%d/docs", cfg.Server.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
