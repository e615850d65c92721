package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tourdrop/tourdrop/internal/api"
	"github.com/tourdrop/tourdrop/internal/config"
	"github.com/tourdrop/tourdrop/internal/export"
	"github.com/tourdrop/tourdrop/internal/komoot"
	"github.com/tourdrop/tourdrop/internal/storage"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("tourdrop starting", "version", api.Version, "host", cfg.Host, "port", cfg.Port)

	// Komoot client
	var client *komoot.Client
	if cfg.KomootBaseURL != "" {
		client = komoot.NewClientWithBaseURL(cfg.KomootBaseURL, slog.Default())
	} else {
		client = komoot.NewClient(slog.Default())
	}

	exporter := export.New(client, slog.Default())

	kinds := storage.Available()
	slog.Info("storage backends registered", "kinds", kinds)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	window := time.Duration(cfg.RateLimitWindowMin) * time.Minute
	srv := api.NewServer(addr, cfg.RateLimitRequests, window, exporter, slog.Default())

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("tourdrop ready", "addr", addr, "rate_limit", cfg.RateLimitRequests, "window_minutes", cfg.RateLimitWindowMin)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("tourdrop stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
