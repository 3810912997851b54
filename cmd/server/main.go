package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TTAWDTT/ToGraph/internal/api"
	"github.com/TTAWDTT/ToGraph/internal/config"
	"github.com/TTAWDTT/ToGraph/internal/convert"
	"github.com/TTAWDTT/ToGraph/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the artifact store and its background sweep.
	artifacts := store.New(cfg.ArtifactTTL, log)
	go artifacts.Sweep(ctx, cfg.SweepInterval)

	// Initialize HTTP server.
	timings := convert.NewTimings(time.Hour)
	srv := api.NewServer(artifacts, timings, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		// Stop the sweep loop and drop every stored artifact.
		cancel()
		artifacts.Close()
	}()

	log.Info("starting tograph server", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
