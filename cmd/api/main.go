package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g docs.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"medi-map/internal/config"

	_ "medi-map/docs" // Import generated docs
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	// Create app
	app, err := NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(ctx, cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		stop()
		os.Exit(1)
	}
}
