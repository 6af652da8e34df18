package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tripshield/backend/internal/api"
	"github.com/tripshield/backend/internal/api/handlers"
	"github.com/tripshield/backend/internal/api/validators"
	"github.com/tripshield/backend/internal/repository"
	"github.com/tripshield/backend/internal/services"
	"github.com/tripshield/backend/internal/session"
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

	log.Info("starting tripshield admin backend",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL)

	touristRepo := repository.NewTouristRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	userRepo := repository.NewUserRepository(db)
	usageRepo := repository.NewUsageLogRepository(db)

	statsSvc := services.NewStatsService(touristRepo, alertRepo, userRepo, usageRepo)
	validate := validators.New()

	router := api.NewRouter(api.Dependencies{
		Sessions:         sessions,
		AdminHandler:     handlers.NewAdminHandler(userRepo, sessions, cfg.SessionTTL),
		TouristsHandler:  handlers.NewTouristsHandler(touristRepo, alertRepo, validate),
		AlertsHandler:    handlers.NewAlertsHandler(alertRepo, validate),
		UsersHandler:     handlers.NewUsersHandler(userRepo, validate),
		UsageLogsHandler: handlers.NewUsageLogsHandler(usageRepo, validate, cfg.RetentionDays),
		StatsHandler:     handlers.NewStatsHandler(statsSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
