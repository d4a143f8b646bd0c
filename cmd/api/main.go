package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rigtrack/rigtrack-backend/api/routes"
	"github.com/rigtrack/rigtrack-backend/internal/assets"
	"github.com/rigtrack/rigtrack-backend/internal/audit"
	"github.com/rigtrack/rigtrack-backend/internal/auth"
	"github.com/rigtrack/rigtrack-backend/internal/bom"
	"github.com/rigtrack/rigtrack-backend/internal/companies"
	"github.com/rigtrack/rigtrack-backend/internal/contracts"
	emailsvc "github.com/rigtrack/rigtrack-backend/internal/email"
	"github.com/rigtrack/rigtrack-backend/internal/notifications"
	"github.com/rigtrack/rigtrack-backend/internal/rigs"
	"github.com/rigtrack/rigtrack-backend/internal/users"
	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
	"github.com/rigtrack/rigtrack-backend/pkg/metrics"
	"github.com/rigtrack/rigtrack-backend/pkg/migrate"
	"github.com/rigtrack/rigtrack-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:     userRepo,
		Limiter:      redisClient,
		JWTConfig:    cfg.JWT,
		PasswordCfg:  cfg.Password,
		RateLimitCfg: cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	auditRecorder, err := audit.NewRecorder(audit.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}

	assetService, err := assets.NewService(assets.NewRepository(gormDB), auditRecorder, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create asset service", err)
		os.Exit(1)
	}

	bomService, err := bom.NewService(bom.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create bom service", err)
		os.Exit(1)
	}

	companyService, err := companies.NewService(companies.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create company service", err)
		os.Exit(1)
	}

	rigService, err := rigs.NewService(rigs.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create rig service", err)
		os.Exit(1)
	}

	contractService, err := contracts.NewService(contracts.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create contract service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	mailer, err := emailsvc.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		logg.Error(context.Background(), "failed to create smtp mailer", err)
		os.Exit(1)
	}
	emailService, err := emailsvc.NewService(mailer, emailsvc.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create email service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			httpMetrics,
			registry,
			authService,
			assetService,
			bomService,
			companyService,
			rigService,
			contractService,
			userService,
			notificationService,
			emailService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
