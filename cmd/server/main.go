// Package main is the entry point for the trading companies portal API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradingportal/companies-api/internal/api"
	"github.com/tradingportal/companies-api/internal/infrastructure/db/postgres"
	redisdb "github.com/tradingportal/companies-api/internal/infrastructure/db/redis"
	"github.com/tradingportal/companies-api/internal/infrastructure/scheduler"
	"github.com/tradingportal/companies-api/internal/pkg/config"
	"github.com/tradingportal/companies-api/pkg/logger"
)

// @title        Trading Companies Portal API
// @version      1.0
// @description  Company directory and per-user watchlists with JWT and Google sign-in.
// @BasePath     /
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.RunMigrations(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		log.Info().Msg("migrations applied")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if cfg.Scheduler.Enabled {
		job := scheduler.NewScripCodeJob(postgres.NewCompanyRepository(pool), cfg.Scheduler.Interval, log)
		job.Start(ctx)
		log.Info().Dur("interval", cfg.Scheduler.Interval).Msg("scrip-code scheduler started")
	}

	e := api.NewRouter(pool, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
