package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medi-map/internal/config"
	"medi-map/internal/location"
	"medi-map/internal/lookup"

	_ "medi-map/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	lookupService   lookup.Service
	locationService location.Service
	cfg             *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	lookupSvc, locationSvc, err := lookup.NewLookupService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return NewAppWithServices(cfg, logger, lookupSvc, locationSvc), nil
}

// NewAppWithServices wires the router around existing services
func NewAppWithServices(cfg *config.Config, logger *slog.Logger, lookupSvc lookup.Service, locationSvc location.Service) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	app := &App{
		router:          router,
		logger:          logger.With("component", "api"),
		lookupService:   lookupSvc,
		locationService: locationSvc,
		cfg:             cfg,
	}

	app.registerRoutes()

	return app
}

// Run serves until ctx is canceled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// the browser map calls the API from another origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
