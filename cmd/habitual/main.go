package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/dukerupert/habitual/internal/config"
	"github.com/dukerupert/habitual/internal/database"
	"github.com/dukerupert/habitual/internal/logging"
	"github.com/dukerupert/habitual/internal/server"
)

var CLI struct {
	config.Config `embed:""`

	Serve   ServeCmd   `cmd:"" help:"Run the web server." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations and exit."`
}

type ServeCmd struct{}

func (c *ServeCmd) Run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := server.New(db, cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background cleanup goroutine
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("habitual starting", "addr", cfg.Addr(), "db", cfg.DBPath, "streak_policy", cfg.Policy())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	logger.Info("shutting down")
	cleanupCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := database.Version(db)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "db", cfg.DBPath, "version", version)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("load .env", "error", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("habitual"),
		kong.Description("Personal task and habit tracker"),
		kong.UsageOnError(),
	)

	cfg := &CLI.Config
	if err := cfg.Validate(); err != nil {
		ctx.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := ctx.Run(cfg, logger); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}
