package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookhaven/bookstore-api/internal/api"
	"github.com/bookhaven/bookstore-api/internal/core/service"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookhaven/bookstore-api/internal/infrastructure/db/redis"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/hash"
	"github.com/bookhaven/bookstore-api/internal/infrastructure/queue"
	"github.com/bookhaven/bookstore-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title          Bookstore API
// @version        1.0
// @description    Book catalog service with JWT authentication.
//
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "bookstore-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
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

	if cfg.Admin.Username != "" {
		users := mongodb.NewUserRepository(db)
		hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)
		if err := service.EnsureAdmin(ctx, users, hasher, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("admin bootstrap failed")
		}
		log.Info().Str("username", cfg.Admin.Username).Msg("admin account ensured")
	}

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
