package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tripshield/backend/internal/queue/tasks"
	"github.com/tripshield/backend/internal/repository"
	"github.com/tripshield/backend/pkg/config"
	"github.com/tripshield/backend/pkg/database"
	"github.com/tripshield/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	usageRepo := repository.NewUsageLogRepository(db)
	cleanup := tasks.NewCleanupTaskHandler(usageRepo, cfg.RetentionDays)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.AsynqConcurrency,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeUsageLogCleanup, cleanup.HandleCleanup)

	// Periodic retention cleanup; the task payload is empty so the handler
	// falls back to the configured default window.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	task, err := tasks.NewCleanupTask(0)
	if err != nil {
		log.Fatal("build cleanup task failed", zap.Error(err))
	}
	if _, err := scheduler.Register(cfg.CleanupSchedule, task); err != nil {
		log.Fatal("register cleanup schedule failed", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("worker starting", zap.Int("concurrency", cfg.AsynqConcurrency))
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		log.Info("scheduler starting", zap.String("schedule", cfg.CleanupSchedule))
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("worker error", zap.Error(err))
	}

	scheduler.Shutdown()
	srv.Shutdown()
	log.Info("worker exited")
}
