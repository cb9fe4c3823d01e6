package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/coinglass-proxy/api"
	"github.com/status-im/coinglass-proxy/config"
	"github.com/status-im/coinglass-proxy/core"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	// Create and start all services
	registry, services, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to setup services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	defer registry.StopAll()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create and start HTTP server
	server := api.New(port, cfg, services.RateLimit, services.Coinglass, services.Cache)
	if err := server.Start(ctx); err != nil {
		log.Fatal("Server failed:", err)
	}
	defer server.Stop()

	// Block until the context is cancelled
	<-ctx.Done()
	log.Println("Shutting down...")
}
