package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phoenix-council/election-api/internal/api"
	"github.com/phoenix-council/election-api/internal/core/service"
	"github.com/phoenix-council/election-api/internal/infrastructure/config"
	mongodb "github.com/phoenix-council/election-api/internal/infrastructure/db/mongo"
	redisdb "github.com/phoenix-council/election-api/internal/infrastructure/db/redis"
	"github.com/phoenix-council/election-api/internal/infrastructure/queue"
	"github.com/phoenix-council/election-api/pkg/logger"
)

// @title        Election API
// @version      1.0
// @description  Single-election voting-integrity and tally service.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// The unique voter_key index must exist before any submission is
	// accepted; without it the one-vote-per-identity guarantee is gone.
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Background workers ---
	auditRepo := mongodb.NewAuditRepository(db)
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	reconciler := service.NewReconciler(
		mongodb.NewSessionRepository(db),
		mongodb.NewBallotRepository(db),
		log,
	)
	if interval := cfg.Election.ReconcileInterval; interval > 0 {
		reconciler.Start(ctx, interval)
	}

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, dispatcher, reconciler, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("election api listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
