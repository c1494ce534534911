package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/auth"
	"github.com/enzo-prism/analytics/config"
	"github.com/enzo-prism/analytics/dashboard"
	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/handler"
	appLogger "github.com/enzo-prism/analytics/logger"
	"github.com/enzo-prism/analytics/middleware"
)

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()
	log.Info().Msg("Configuration loaded successfully")

	// Wire the GA clients and the dashboard assembler
	credentials := auth.NewProvider(cfg.Google)
	if !credentials.Configured() {
		log.Warn().Msg("GA service account credentials missing - dashboard requests will fail")
	}
	client := gaclient.NewClient(cfg.Google)
	assembler := dashboard.New(client, credentials, cfg.Dashboard)

	dashboardHandler := handler.NewDashboardHandler(assembler, credentials)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes; the API surface sits behind the shared password
	r.HandleFunc("/health", dashboardHandler.HealthCheck).Methods("GET")

	basicAuth := middleware.NewBasicAuth(cfg.Dashboard.Password)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(basicAuth.Protect)
	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/properties/{propertyID}", dashboardHandler.GetPropertyDetail).Methods("GET")

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped gracefully")
}
