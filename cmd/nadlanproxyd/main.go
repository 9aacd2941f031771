package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nadlan-proxy/config"
	"nadlan-proxy/internal/api"
	"nadlan-proxy/internal/upstream"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "nadlan-proxy ", log.LstdFlags)

	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		logger.Println("environment loaded from .env")
	}

	// Load configuration. With no CONFIG_PATH the built-in defaults apply
	// and only PORT is read from the environment.
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	if configPath != "" {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	// Initialize the upstream clients
	registry := upstream.NewClient(&cfg.Registry)
	datastore := upstream.NewDatastore(&cfg.Datastore)

	// Initialize router
	handler := api.NewHandler(registry, datastore, cfg)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
