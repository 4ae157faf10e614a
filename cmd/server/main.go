package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recordops/ledger-api/internal/api"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
	"github.com/recordops/ledger-api/internal/core/service"
	mongodb "github.com/recordops/ledger-api/internal/infrastructure/db/mongo"
	redisdb "github.com/recordops/ledger-api/internal/infrastructure/db/redis"
	"github.com/recordops/ledger-api/internal/infrastructure/queue"
	"github.com/recordops/ledger-api/internal/pkg/config"
	"github.com/recordops/ledger-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	if err := seedSuperadmin(ctx, cfg.Seed, mongodb.NewUserRepository(db), hasher); err != nil {
		log.Fatal().Err(err).Msg("superadmin seed failed")
	}

	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Audit:      dispatcher,
		Log:        log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
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

// seedSuperadmin creates the bootstrap SUPERADMIN account when configured and
// not already present. Without it a fresh deployment has no account able to
// mint admins.
func seedSuperadmin(ctx context.Context, seed config.SeedConfig, users ports.UserRepository, hasher *service.PasswordHasher) error {
	if seed.SuperadminEmail == "" || seed.SuperadminPassword == "" {
		return nil
	}

	email := service.NormalizeEmail(seed.SuperadminEmail)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(seed.SuperadminPassword)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, &domain.User{
		Name:         "superadmin",
		Email:        email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleSuperAdmin},
		IsActive:     true,
	})
	return err
}
