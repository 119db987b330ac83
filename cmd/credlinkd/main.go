package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/api"
	"github.com/jayeshk55/CredLink-sub000/internal/api/handler"
	"github.com/jayeshk55/CredLink-sub000/internal/cache"
	"github.com/jayeshk55/CredLink-sub000/internal/config"
	"github.com/jayeshk55/CredLink-sub000/internal/model"
	"github.com/jayeshk55/CredLink-sub000/internal/repository"
	"github.com/jayeshk55/CredLink-sub000/internal/service"
	"github.com/jayeshk55/CredLink-sub000/pkg/logger"
	"github.com/jayeshk55/CredLink-sub000/pkg/tracing"
)

func main() {
	cfg, err := config.Load(os.Getenv("CREDLINK_CONFIG_DIR"))
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Telemetry.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Telemetry.SentryDSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, "credlinkd", cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Error("tracing setup failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Error("open database failed", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Card{},
		&model.Message{}, &model.ConnectionRequest{}, &model.ContactLink{},
	); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}

	store := newCacheStore(cfg)

	msgRepo := repository.NewMessageRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRepo := repository.NewUserRepository(db)

	convSvc := service.NewConversationService(msgRepo, store)
	notifSvc := service.NewNotificationService(msgRepo, connRepo, userRepo, cfg.Notification.Window)
	summarySvc := service.NewSummaryService(notifSvc, convSvc, connRepo, contactRepo, store, cfg.Cache.SummaryTTL)

	h := handler.New(convSvc, notifSvc, summarySvc, userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewRouter(h, cfg)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func openDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
}

func newCacheStore(cfg *config.Config) cache.Store {
	if cfg.Cache.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return cache.NewRedisStore(client)
	}
	return cache.NewMemoryStore(cfg.Cache.Capacity)
}
