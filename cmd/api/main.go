package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"estate-backend/internal/application/snapshots"
	"estate-backend/internal/config"
	"estate-backend/internal/infrastructure/scheduler"
	"estate-backend/internal/interfaces/router"
	"estate-backend/internal/pkg/logger"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	l := logger.Setup(cfg.LogLevel, !cfg.IsProduction())

	app, deps, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := deps.Redis.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	log.Info().Msg("Redis connected")

	sched := scheduler.New(l)
	if cfg.SnapshotSchedule != "" {
		job := &snapshots.Job{Service: deps.Snapshots}
		if err := sched.AddJob(cfg.SnapshotSchedule, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.SnapshotSchedule).Msg("snapshot schedule")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Server running")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped")
	}
}
