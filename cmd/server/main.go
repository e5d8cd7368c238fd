package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jdvermeer/screenlist/internal/config"
	"github.com/jdvermeer/screenlist/internal/logging"
	"github.com/jdvermeer/screenlist/internal/refdata"
	"github.com/jdvermeer/screenlist/internal/screening"
	"github.com/jdvermeer/screenlist/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"reference_dir", cfg.Reference.Dir,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Resolve the reference manifest: the built-in file lists unless a
	// YAML override is configured.
	manifest := refdata.DefaultManifest(cfg.Reference.Dir)
	if cfg.Reference.Manifest != "" {
		manifest, err = refdata.LoadManifest(cfg.Reference.Manifest, cfg.Reference.Dir)
		if err != nil {
			slog.Error("failed to load reference manifest", "error", err)
			os.Exit(1)
		}
	}

	// Build the reference groups before serving any request. A missing
	// folder or unreadable file degrades to empty sets, it does not stop
	// startup.
	groups, err := refdata.Build(context.Background(), manifest)
	if err != nil {
		slog.Error("failed to build reference groups", "error", err)
		os.Exit(1)
	}

	service := screening.NewService(groups, cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active screenings to complete (with timeout)
		if stats := service.Stats(); stats.Active > 0 {
			slog.Info("waiting for screenings to complete", "active", stats.Active)
			if err := service.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("screenings did not complete in time", "error", err)
			} else {
				slog.Info("all screenings completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
