package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthguru/finance-coach/internal/api/handlers"
	"github.com/arthguru/finance-coach/internal/config"
	"github.com/arthguru/finance-coach/internal/logger"
	"github.com/arthguru/finance-coach/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(false)
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Parse command-line flags
	var (
		port = flag.String("port", cfg.Port, "HTTP server port")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New(cfg.Debug)

	// Initialize session store and routes
	store := session.NewStore(cfg.MaxSessions)
	router := handlers.Router(store, cfg.SampleSeed, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Int("max_sessions", cfg.MaxSessions).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
