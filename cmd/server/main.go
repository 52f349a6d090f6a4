package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeonardoCto/myeconomyback/config"
	"github.com/LeonardoCto/myeconomyback/internal/alerts"
	"github.com/LeonardoCto/myeconomyback/internal/email"
	"github.com/LeonardoCto/myeconomyback/internal/health"
	"github.com/LeonardoCto/myeconomyback/internal/infrastructure/postgres"
	ctxlog "github.com/LeonardoCto/myeconomyback/internal/log"
	"github.com/LeonardoCto/myeconomyback/internal/metrics"
	"github.com/LeonardoCto/myeconomyback/internal/token"
	httptransport "github.com/LeonardoCto/myeconomyback/internal/transport/http"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/handler"
	"github.com/LeonardoCto/myeconomyback/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	tokens := token.NewManager([]byte(cfg.TokenSecret))
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Users and auth
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, emailSender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)
	userHandler := handler.NewUserHandler(userRepo, logger)

	// Categories
	categoryRepo := postgres.NewCategoryRepository(pool)
	categoryHandler := handler.NewCategoryHandler(categoryRepo, logger)

	// Expenses
	expenseRepo := postgres.NewExpenseRepository(pool)
	expenseUsecase := usecase.NewExpenseUsecase(expenseRepo)
	expenseHandler := handler.NewExpenseHandler(expenseUsecase, logger)

	// Limits
	limitRepo := postgres.NewLimitRepository(pool)
	limitUsecase := usecase.NewLimitUsecase(limitRepo)
	limitHandler := handler.NewLimitHandler(limitUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	notifier := alerts.NewNotifier(expenseRepo, emailSender, logger)
	if cfg.AlertCron != "" {
		if err := notifier.Start(cfg.AlertCron); err != nil {
			stop()
			log.Fatalf("alerts: %v", err)
		}
	}

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(httptransport.RouterDeps{
			Logger:          logger,
			Tokens:          tokens,
			Users:           userRepo,
			AuthHandler:     authHandler,
			UserHandler:     userHandler,
			ExpenseHandler:  expenseHandler,
			LimitHandler:    limitHandler,
			CategoryHandler: categoryHandler,
		}),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	notifier.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
