package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgomes/vocadrill/internal/api"
	"github.com/lgomes/vocadrill/internal/config"
	"github.com/lgomes/vocadrill/internal/db"
	"github.com/lgomes/vocadrill/internal/games"
	"github.com/lgomes/vocadrill/internal/jobs"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/repository/sqlite"
	"github.com/lgomes/vocadrill/internal/services"
	"github.com/lgomes/vocadrill/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Vocadrill Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_session_size=%d", cfg.DefaultSessionSize)
	log.Debug("max_session_size=%d", cfg.MaxSessionSize)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	progressRepo := sqlite.NewProgressRepository(database.DB)
	contentRepo := sqlite.NewContentRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	queue := jobs.NewWorkerQueue(statsPool, statsRepo)

	registry := games.NewRegistry()
	sessionService := services.NewSessionService(progressRepo, contentRepo, sessionRepo, queue, registry)
	cardService := services.NewCardService(contentRepo)
	statsService := services.NewStatsService(statsRepo)

	srv := &api.Server{
		DB:             database,
		Config:         &cfg,
		SessionService: sessionService,
		CardService:    cardService,
		StatsService:   statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("Vocadrill Server Stopped")
	log.Info("===========================================")
}
