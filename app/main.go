package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lphan/macwatch/app/api"
	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/cfg"
	"github.com/lphan/macwatch/app/database"
	"github.com/lphan/macwatch/app/exchange"
	"github.com/lphan/macwatch/app/monitor"
	"github.com/lphan/macwatch/app/shops"
	"github.com/lphan/macwatch/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting MacWatch server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	historyRepo := database.NewHistoryRepository(db)
	runRepo := database.NewChangeRunRepository(db)

	configCache := shops.NewConfigCache(appCfg.ShopsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load shop configurations", "dir", appCfg.ShopsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Shop configurations loaded", "count", configCache.GetConfigCount(),
		"enabled", len(configCache.GetEnabledConfigs()))

	store := catalog.NewStore()
	detector := monitor.NewDetector(historyRepo)
	writer := monitor.NewWriter(appCfg.OutputDir)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	rates := exchange.NewProvider(httpClient, appCfg.ExchangeRateURL, appCfg.UserAgent, appCfg.ExchangeRateFallback)

	scheduler := tasks.NewScheduler(configCache, store, detector, writer, runRepo)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(configCache, store, historyRepo, runRepo, rates, scheduler)
	engine := api.NewServer(handler, appCfg.APIAccessKey, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error, shutting down", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
